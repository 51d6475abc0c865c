// Package feed owns the shared post feed: creating, reading, listing,
// editing, and deleting posts, plus the image attachments posts may carry.
//
// Access control runs inside the application layer. Every operation,
// reads included, requires an authenticated session, and edits or
// deletions additionally require ownership of the post. Each post is
// recorded both as a row of the feed and as an entry in its owner's post
// index, and lifecycle events are announced on the message bus for other
// contexts to consume.
package feed
