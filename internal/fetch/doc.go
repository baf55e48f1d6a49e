// Package fetch performs bounded HTTP GETs against federation listing pages.
//
// A Fetcher follows redirects up to a cap, enforces a request timeout, and
// treats any non-2xx response as a *FetchError. It carries no retry policy;
// retry and failure isolation belong to the scrape orchestrator. Requests are
// gated by a per-host rate limiter and, optionally, a cached robots.txt check.
package fetch
