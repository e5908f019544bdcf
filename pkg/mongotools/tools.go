package mongotools

import (
	"go.mongodb.org/mongo-driver/bson"
)

func SetAll(fieldKVs ...bson.M) bson.M {
	s := make(bson.M, len(fieldKVs))
	for _, kv := range fieldKVs {
		for k, v := range kv {
			s[k] = v
		}
	}

	return bson.M{"$set": s}
}

func FilterByID[T any](id T) bson.M {
	return bson.M{"_id": id}
}

// Field skips nil values, so optional updates can be
// passed straight into SetAll.
func Field[T any](field string, value *T) bson.M {
	if value == nil {
		return bson.M{}
	}
	return bson.M{field: *value}
}
