// Package environment names the deployment environment a command runs in
// (development, staging or production) and carries it through
// context.Context so that behaviour can depend on it.
//
// Parse normalises the APP_ENV value, accepting the short aliases "dev",
// "stage" and "prod"; anything else is Development.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx = environment.WithContext(ctx, env)
//	if environment.IsProduction(ctx) { ... }
//
// Loggers tag records with the environment through logger.WithEnvironment.
package environment
