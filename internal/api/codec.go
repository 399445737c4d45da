package api

import "encoding/json"

// Codec serializes the plain Go message types of this package as JSON.
// Connect's built-in JSON codec only accepts protobuf messages.
type Codec struct{}

// Name implements connect.Codec. Connect derives the "application/json"
// content type from it.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
