// Package jenkinsclient provides the primary entry point for constructing
// a client that implements the jenkins.Client interface.
//
// It layers configuration, HTTP transport, CSRF crumb handling, and
// response caching on top of the resource interfaces and types defined in
// the jenkins package. Most applications should import jenkinsclient to
// build a client, then use the returned jenkins.Client to access the
// resource-specific clients, for example Jobs(), Builds(), Queue().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/nineflags-io/jenkinsapi/pkg/jenkins"
//	  "github.com/nineflags-io/jenkinsapi/pkg/jenkinsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just a server URL (anonymous access).
//	  cli, err := jenkinsclient.NewWithEndpoint(ctx, "https://ci.example.com")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an API token:
//	  cli, err = jenkinsclient.New(ctx, &jenkins.Config{
//	    BaseURL:  "https://ci.example.com",
//	    Username: "admin",
//	    APIToken: "11abc...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  job, err := cli.Jobs().Get(ctx, "my-job")
//	  if err != nil { log.Fatal(err) }
//	  _ = job
//	}
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithToken, and NewWithPassword that wrap New with the appropriate
// configuration.
package jenkinsclient
