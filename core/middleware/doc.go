// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the image endpoints.
//   - rayid: a unique request id (RayID) per request, stored in the Fiber
//     locals for logger.WithRayID and echoed in the X-Ray-ID header.
package middleware
