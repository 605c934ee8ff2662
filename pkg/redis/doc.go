// Package redis connects to Redis through github.com/redis/go-redis/v9.
//
// Connect parses a redis:// URL, pings the server and retries on failure
// according to Config. Healthcheck returns a probe suitable for readiness
// endpoints. The session package's RedisStore takes the resulting client.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors wrap the driver error with errors.Join, so both the sentinel and the
// underlying cause match errors.Is.
package redis
