// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package array

import (
	"fmt"
	"strings"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/cdata"
)

// MakeFromProxy dispatches on the proxy's format string and wraps it in
// the matching typed layout. The layout takes over the proxy; releasing
// the layout releases the proxy if it owns its descriptors.
func MakeFromProxy(data *cdata.Proxy) (xparrow.Array, error) {
	format := data.Format()
	switch format {
	case xparrow.FormatNull:
		return NewNullData(data)
	case xparrow.FormatBoolean:
		return NewBooleanData(data)
	case xparrow.FormatInt8:
		return NewNumberData[int8](data)
	case xparrow.FormatUint8:
		return NewNumberData[uint8](data)
	case xparrow.FormatInt16:
		return NewNumberData[int16](data)
	case xparrow.FormatUint16:
		return NewNumberData[uint16](data)
	case xparrow.FormatInt32:
		return NewNumberData[int32](data)
	case xparrow.FormatUint32:
		return NewNumberData[uint32](data)
	case xparrow.FormatInt64:
		return NewNumberData[int64](data)
	case xparrow.FormatUint64:
		return NewNumberData[uint64](data)
	case xparrow.FormatFloat32:
		return NewNumberData[float32](data)
	case xparrow.FormatFloat64:
		return NewNumberData[float64](data)
	case xparrow.FormatString:
		return NewStringData(data)
	case xparrow.FormatBinary:
		return NewBinaryData(data)
	case xparrow.FormatList:
		return NewListData(data)
	case xparrow.FormatLargeList:
		return NewLargeListData(data)
	case xparrow.FormatListView:
		return NewListViewData(data)
	case xparrow.FormatLargeListView:
		return NewLargeListViewData(data)
	case xparrow.FormatStruct:
		return NewStructData(data)
	}
	if strings.HasPrefix(format, xparrow.FormatFixedSizeListPrefix) {
		return NewFixedSizeListData(data)
	}
	return nil, fmt.Errorf("%w: no layout for format %q", xparrow.ErrUnsupportedFormat, format)
}

func expectFormat(data *cdata.Proxy, format string) error {
	if data.Format() != format {
		return fmt.Errorf("%w: got format %q, want %q", xparrow.ErrUnsupportedFormat, data.Format(), format)
	}
	return nil
}
