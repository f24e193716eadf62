// Package githubapi implements a GET-only client for the GitHub REST API.
//
// The client attaches an Authorization header when a token is configured,
// requests the JSON media type by default, and follows redirects. Two rate
// limiting strategies are combined:
//
//  1. Proactive throttling: a token bucket keeps request rates comfortably
//     under the authenticated quota.
//
//  2. Reactive backoff: a 403 or 429 response is never surfaced to the
//     caller. The client derives a wait from the Retry-After header, then
//     from X-RateLimit-Reset, then falls back to a fixed 60 seconds, sleeps,
//     and retries the same URL. The loop has no attempt ceiling; it is
//     bounded only by context cancellation.
//
// Any other non-2xx response fails immediately with an *APIError carrying
// the status code and the exact URL requested.
//
// Paged list endpoints are walked by following the rel="next" entry of the
// Link response header until no next page remains. Item order across pages
// is preserved.
package githubapi
