// Package zoekt runs the Zoekt indexer over installed package directories.
//
// Each directory is indexed as its own logical repository named
// "<project>/deps/<dir>", so a search such as
//
//	r:myproject/deps/ requests.Session
//
// is limited to one project's dependencies. The name is passed to
// zoekt-index through a temporary JSON metadata file:
//
//	zoekt-index -index ~/.zoekt -meta /tmp/123.meta.json <site-packages>/requests
//
// The metadata file is removed once the indexer returns, whatever the
// outcome. Indexing is idempotent: running it again replaces the shard for
// the same repository name.
package zoekt
