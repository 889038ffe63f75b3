package db

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	NoProjection = bson.M{}
	NoSort       = []string{}
	NoSkip       = 0
	NoLimit      = 0
)

// Q holds all of the fields of a read plan: filter, projection,
// sort, skip, and limit. Never mutate one of these objects directly;
// the builder methods return modified copies.
type Q struct {
	filter     any
	projection any
	sort       []string
	skip       int
	limit      int
}

// Query creates a Q for the given filter.
func Query(filter any) Q {
	return Q{filter: filter}
}

func (q Q) Filter(filter any) Q {
	q.filter = filter
	return q
}

func (q Q) Project(projection any) Q {
	q.projection = projection
	return q
}

// WithFields restricts the returned attributes to the named set.
func (q Q) WithFields(fields ...string) Q {
	projection := map[string]int{}
	for _, f := range fields {
		projection[f] = 1
	}
	q.projection = projection
	return q
}

// Sort sets the sort order. Each field may be prefixed with "-" for
// descending order.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

// sortSpec translates "-field" style sort strings into the ordered
// document the driver expects.
func sortSpec(sort []string) bson.D {
	spec := bson.D{}
	for _, field := range sort {
		if field == "" {
			continue
		}
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = strings.TrimPrefix(field, "-")
		}
		spec = append(spec, bson.E{Key: field, Value: direction})
	}
	return spec
}
