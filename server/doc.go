// Package server exposes talent search over HTTP.
//
// Routes:
//
//	GET /api/v1/talents   ids of visible talents matching the query
//	GET /health           search engine health
//	GET /metrics          collector statistics
//
// List parameters are passed as repeated keys:
//
//	/api/v1/talents?company_id=7&work_roles=DevOps&work_roles=Fullstack&epoch=1700000000
package server
