// Package importer upserts users, their banks and their posts from the
// dummyjson API into the database.
//
// Users and posts are matched on their upstream id (dummy_id). A user that is
// already stored is overwritten in place and keeps its bank; a new user gets a
// new bank. The bank is always persisted before the user that references it.
//
// A run fetches one page of users, then for every user fetches all of that
// user's posts. Service.Import serializes runs within a process; concurrent
// processes are reconciled through the unique dummy_id indexes.
package importer
