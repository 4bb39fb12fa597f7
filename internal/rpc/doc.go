// Package rpc defines the fitcal gRPC service: message types, the service
// descriptor, a typed client stub and the JSON codec the messages travel in.
//
// Messages are plain Go structs. They are encoded with encoding/json under
// the "json" content-subtype, which the package registers with grpc on
// import. The client stub requests that subtype on every call, so both ends
// agree without any generated code.
package rpc
