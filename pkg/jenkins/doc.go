// Package jenkins provides a typed Go client for a Jenkins-compatible
// automation server's JSON HTTP API.
//
// The client speaks the server's /api/json protocol: typed paths, tree
// field selection, CSRF crumb handling, and polymorphic decoding of the
// _class discriminated payloads the server returns.
//
// Basic usage:
//
//	client, err := jenkinsclient.New(ctx, &jenkins.Config{
//		BaseURL:  "https://ci.example.com",
//		Username: "admin",
//		APIToken: "token",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	job, err := client.Jobs().Get(ctx, "my-job")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Partial fetches use tree selectors, which mirror the server's tree
// query grammar:
//
//	tree := jenkins.NewTreeSelector().
//		WithField("name").
//		WithObject("builds", jenkins.NewTreeSelector().WithFields("number", "result"))
//	job, err := client.Jobs().GetWithQuery(ctx, "my-job",
//		jenkins.NewQueryParams().WithTree(tree))
//
// Errors are classified into a small taxonomy with predicates such as
// IsNotFound, IsTransport and IsUnexpectedShape, so callers can branch on
// failure class without string matching.
package jenkins
