// Package dummyapi is the client for the upstream JSON API (dummyjson.com).
//
// # Contract
//
// Fetch builds {base}/{resource}, adds ?limit=N only when N != 0 and &skip=M only
// when both N and M are non-zero, performs a single GET and returns the decoded
// object. Failures are absorbed: a non-200 status, a transport error or an
// undecodable body all produce an empty Payload and a warn-level log line.
// There is no retry and no backoff.
//
// # Usage
//
//	client := dummyapi.NewClient(cfg.API, logger)
//	users := client.Fetch(ctx, "users", 10, 0).Records("users")
package dummyapi
