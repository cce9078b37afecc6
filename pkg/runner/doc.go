/*
Package runner implements stateless grammar generation for callers that serve many clients.

It acts as the bridge between the single-threaded engine and concurrent frontends (HTTP, MCP).
Every request gets its own engine, so requests never share mutable state. The Runner resolves
named presets, enforces an iteration limit, and consults an optional shared branch cache.
Concurrent identical requests are collapsed so an expansion runs once per cache key, across
replicas too when a distributed locker is configured.

# Usage

	r := runner.New(
		runner.WithRegistry(registry.NewDefault()),
		runner.WithCache(redisCache),
		runner.WithMaxIterations(6),
	)

	res, err := r.Generate(ctx, domain.GenerateRequest{Preset: "plant-a", Iterations: 4})
*/
package runner
