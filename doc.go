/*
Package linearmap provides a generic open addressing hash table with linear
probing.

Table is the probing engine: callers pass the hash of every key along with
the functions used to compare, copy and destroy keys. Map binds a Table to a
Behavior, so that keys are hashed and compared the same way on every call:

	m, err := linearmap.New[string, int](0)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Insert("foo", 42); err != nil {
		log.Fatal(err)
	}

	if v, ok := m.Get("foo"); ok {
		fmt.Println("Value:", v)
	}

Implementation Details:

Every bucket stores the key, the value and the full hash of the key, with a
hash of 0 marking an empty bucket. Hashes of 0 are therefore rejected with
ErrInvalidHash.

Before an insert that would bring the table to 70% load, the bucket array is
doubled (starting at 8 buckets) and every entry is reinserted by its stored
hash. Erasing an entry shifts the displaced entries that follow it back, so
no tombstones are ever left and an empty bucket always ends a probe.

Inserting a key which is already present fails with ErrDuplicateKey.
*/
package linearmap
