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
Package xparrow provides in-memory columnar arrays in the Apache Arrow
columnar format: typed, nullable, possibly nested sequences of values backed
by a small set of contiguous buffers, described by the schema/array
descriptor pair of the Arrow C data interface.

The root package holds the format-string grammar, the descriptor flags, the
error taxonomy and the type-erased Array interface. The concrete layouts,
the format-string factory and the generic builder live in the array
subpackage; the descriptor pair and its ownership proxy live in cdata;
validity bitmaps live in bitutil; allocators and buffers live in memory.
*/
package xparrow
