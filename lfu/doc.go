/*
Package lfu implements a fixed-capacity key/value cache with
Least-Frequently-Used eviction. Among the entries sharing the lowest
frequency, the least recently touched one is evicted first.

Get and Put both run in amortized O(1) time:

  - a key index maps every key to the slot of its entry
  - a frequency index maps every frequency to a bucket, a doubly-linked
    list of the entries with that frequency ordered by recency
  - a running minimum frequency points at the bucket eviction draws from

All entries and all bucket sentinels live in one arena and refer to each
other by slot handles, never by pointers.

A Cache is NOT safe for concurrent use. Even Get mutates frequency and
position, so callers sharing a Cache must serialize every call with a
single lock.
*/
package lfu
