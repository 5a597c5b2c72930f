package domain

import "fmt"

// Question carries one entry of the question section: the parameters that
// define what is being asked.
type Question struct {
	// QName is the fully qualified domain name being queried, in dotted form
	// without the trailing root dot.
	QName string

	// QType specifies the type of the query.
	QType RRType

	// QClass specifies the class of the query.
	QClass RRClass
}

func (q Question) String() string {
	return fmt.Sprintf("%s(%s %s)", q.QName, q.QClass, q.QType)
}

// CacheKey returns a cache key string derived from the question's name,
// type, and class.
func (q Question) CacheKey() string {
	return GenerateCacheKey(q.QName, q.QType, q.QClass)
}
