package store

// Collection names a typed group of mirrored records. The set is closed:
// the schema for each collection is created by the embedded migrations.
type Collection string

// Collections persisted by the local store.
const (
	CollectionTrips           Collection = "trips"
	CollectionBookings        Collection = "bookings"
	CollectionPosts           Collection = "posts"
	CollectionSyncQueue       Collection = "syncQueue"
	CollectionUserData        Collection = "userData"
	CollectionCachedResponses Collection = "cachedResponses"
)

// Secondary index names. An index maps to a json_extract expression index
// created by the migrations; QueryByIndex and List must use the exact same
// expression for SQLite to use it.
const (
	IndexByUser       = "by-user"
	IndexBySyncStatus = "by-sync-status"
	IndexByTrip       = "by-trip"
	IndexByType       = "by-type"
	IndexByTimestamp  = "by-timestamp"
	IndexByURL        = "by-url"
	IndexByExpires    = "by-expires"
)

type tableSpec struct {
	table string
	// indexes maps an index name to the JSON path of the payload field it
	// covers.
	indexes map[string]string
}

var collections = map[Collection]tableSpec{
	CollectionTrips: {
		table: "trips",
		indexes: map[string]string{
			IndexByUser:       "$.ownerId",
			IndexBySyncStatus: "$.syncStatus",
		},
	},
	CollectionBookings: {
		table: "bookings",
		indexes: map[string]string{
			IndexByUser: "$.ownerId",
			IndexByTrip: "$.tripId",
		},
	},
	CollectionPosts: {
		table: "posts",
		indexes: map[string]string{
			IndexByUser: "$.ownerId",
			IndexByTrip: "$.tripId",
		},
	},
	CollectionSyncQueue: {
		table: "sync_queue",
		indexes: map[string]string{
			IndexByType:      "$.type",
			IndexByTimestamp: "$.timestamp",
		},
	},
	CollectionUserData: {
		table: "user_data",
		indexes: map[string]string{
			IndexByUser: "$.ownerId",
			IndexByType: "$.collectionType",
		},
	},
	CollectionCachedResponses: {
		table: "cached_responses",
		indexes: map[string]string{
			IndexByURL:     "$.url",
			IndexByExpires: "$.expiresAt",
		},
	},
}

// EntityCollection resolves a server collection type ("trip", "booking",
// "post") to its local store collection.
func EntityCollection(collectionType string) (Collection, bool) {
	switch collectionType {
	case "trip":
		return CollectionTrips, true
	case "booking":
		return CollectionBookings, true
	case "post":
		return CollectionPosts, true
	default:
		return "", false
	}
}

func (c Collection) spec() (tableSpec, error) {
	spec, ok := collections[c]
	if !ok {
		return tableSpec{}, ErrUnknownCollection
	}
	return spec, nil
}

// IndexPath resolves the JSON path the named index covers. Exposed for
// LocalStore test doubles that must honor the same registry.
func IndexPath(collection Collection, index string) (string, error) {
	return collection.indexPath(index)
}

func (c Collection) indexPath(index string) (string, error) {
	spec, err := c.spec()
	if err != nil {
		return "", err
	}
	path, ok := spec.indexes[index]
	if !ok {
		return "", ErrUnknownIndex
	}
	return path, nil
}
