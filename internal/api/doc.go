// Package api defines the StreakService wire contract shared by the server
// and the client: request and response messages, the gRPC service
// descriptor, a client stub, and the JSON codec the messages travel in.
//
// Messages are plain structs with json tags. Calls must use the "json"
// content-subtype; NewStreakServiceClient sets it on every call.
package api
