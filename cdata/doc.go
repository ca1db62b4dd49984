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

/*
Package cdata holds the schema and array descriptor pair of the Arrow C data
interface and the Proxy that wraps one pair with safe accessors.

Schema and Array mirror ArrowSchema and ArrowArray field for field: format,
name, metadata, flags, children, dictionary, release callback and private
data on the schema side; length, null_count, offset, buffers, children,
dictionary, release callback and private data on the array side. Metadata
crosses the boundary as the C-ABI length-prefixed binary blob (see
EncodeMetadata and DecodeMetadata).

Releasing a descriptor frees its private data, recursively releases the
children and dictionary it owns, then nulls the struct out. A descriptor
whose release callback is already nil is never released again.

A Proxy binds one Schema and one Array and is either owning (it created
both; releasing it releases the whole subtree exactly once) or a view
(borrowed from an external producer; releasing it is a no-op). Child proxies
are always views, since ownership belongs to the root descriptor.
*/
package cdata
