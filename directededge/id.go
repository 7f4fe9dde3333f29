package directededge

import (
	"github.com/oklog/ulid/v2"
)


// comparable
// ulids are ordered by create time, so request ids from one process sort in issue order
type RequestId [16]byte

func NewRequestId() RequestId {
	return RequestId(ulid.Make())
}

func ParseRequestId(requestIdStr string) (RequestId, error) {
	id, err := ulid.Parse(requestIdStr)
	if err != nil {
		return RequestId{}, err
	}
	return RequestId(id), nil
}

func (self RequestId) String() string {
	return ulid.ULID(self).String()
}
