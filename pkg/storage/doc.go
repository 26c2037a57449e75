// Package storage defines the transcript store: persistence for
// completed chat exchanges so a front-end can restore or browse past
// conversations. Implementations live in subpackages (memory,
// postgres). Stores are profile-scoped via context when several
// configuration profiles share one backing store.
package storage
