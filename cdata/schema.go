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

package cdata

import (
	"fmt"

	"github.com/xtensor-stack/xparrow"
	"github.com/xtensor-stack/xparrow/internal/debug"
)

// Schema is the type description of one array: the ArrowSchema side of the
// descriptor pair.
type Schema struct {
	format      string
	name        string
	metadata    []byte // C-ABI length-prefixed blob, nil when absent
	flags       xparrow.Flag
	children    []*Schema
	dictionary  *Schema
	release     func(*Schema)
	privateData any
}

// NewSchema builds an owning schema descriptor. The format must be
// non-empty and every child non-nil.
func NewSchema(format, name string, metadata xparrow.Metadata, flags xparrow.Flag, children []*Schema, dictionary *Schema) (*Schema, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: empty format", xparrow.ErrInvalidFormat)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: nil child schema at %d", xparrow.ErrShapeMismatch, i)
		}
	}
	return &Schema{
		format:     format,
		name:       name,
		metadata:   EncodeMetadata(metadata),
		flags:      flags,
		children:   children,
		dictionary: dictionary,
		release:    releaseSchema,
	}, nil
}

func (s *Schema) Format() string { return s.format }
func (s *Schema) Name() string { return s.name }

// Metadata decodes the metadata blob. An absent blob decodes to empty
// metadata.
func (s *Schema) Metadata() xparrow.Metadata {
	md, err := DecodeMetadata(s.metadata)
	if err != nil {
		panic(err)
	}
	return md
}

func (s *Schema) Flags() xparrow.Flag { return s.flags }
func (s *Schema) NumChildren() int { return len(s.children) }
func (s *Schema) Child(i int) *Schema { return s.children[i] }
func (s *Schema) Dictionary() *Schema { return s.dictionary }

// SetName renames the schema. Construction-time helper, used when a child
// is attached to a struct parent under a field name.
func (s *Schema) SetName(name string) { s.name = name }

// Released reports whether the descriptor has already been released.
func (s *Schema) Released() bool { return s.release == nil }

// Release releases the descriptor subtree. Releasing an already-released
// descriptor is a guarded no-op.
func (s *Schema) Release() {
	if s.release == nil {
		debug.Log("cdata: schema already released")
		return
	}
	rel := s.release
	s.release = nil
	rel(s)
}

func releaseSchema(s *Schema) {
	for _, c := range s.children {
		if c != nil {
			c.Release()
		}
	}
	if s.dictionary != nil {
		s.dictionary.Release()
	}
	s.format = ""
	s.name = ""
	s.metadata = nil
	s.children = nil
	s.dictionary = nil
	s.privateData = nil
}

// Clone returns a deep copy of the schema subtree.
func (s *Schema) Clone() *Schema {
	if s.Released() {
		panic(fmt.Errorf("%w: clone of released schema", xparrow.ErrDoubleRelease))
	}
	children := make([]*Schema, len(s.children))
	for i, c := range s.children {
		children[i] = c.Clone()
	}
	if len(children) == 0 {
		children = nil
	}
	var dict *Schema
	if s.dictionary != nil {
		dict = s.dictionary.Clone()
	}
	var md []byte
	if s.metadata != nil {
		md = append([]byte(nil), s.metadata...)
	}
	return &Schema{
		format:     s.format,
		name:       s.name,
		metadata:   md,
		flags:      s.flags,
		children:   children,
		dictionary: dict,
		release:    releaseSchema,
	}
}
