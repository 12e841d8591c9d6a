// Package httputil provides retry and response-caching support for the
// upstream concept API client.
//
// # Retry
//
// [Retry] and [RetryWithBackoff] re-run a request function with exponential
// backoff when it fails with a [RetryableError]. The API client wraps
// transient failures (network errors, 5xx responses, 429 rate limits) in
// [RetryableError] so only those are retried:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return doRequest()
//	})
//
// # Caching
//
// [Cache] is a file-backed store for JSON-encodable values with a TTL,
// keyed by the sha256 of the caller's key. The serve command hands one to
// the API client, which caches search responses under a "search:"
// namespace so repeated queries skip the upstream round trip:
//
//	cache, err := httputil.NewCache("", 24*time.Hour) // "" picks the user cache dir
//	searches := cache.Namespace("search:")
//
//	var hits []icd.SearchHit
//	ok, err := searches.Get(query, &hits)
//	if !ok {
//	    hits = fetch(query)
//	    err = searches.Set(query, hits)
//	}
//
// Expired entries are removed lazily on Get. Deleting the cache directory
// is always safe.
package httputil
