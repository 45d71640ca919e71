// Package geometrypb holds the protobuf form of the geometry messages.
package geometrypb

//go:generate protoc --go_out=. --go_opt=paths=source_relative geometry.proto
