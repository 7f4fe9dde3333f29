package directededge

import (
	"testing"

	"github.com/go-playground/assert/v2"
)


func TestQueryParamOrder(t *testing.T) {
	database, transport := newTestDatabase()
	item := NewItem(database, "a")

	params := &QueryParams{
		ExcludeLinked: true,
		MaxResults:    10,
		Tags:          []string{"x", "y"},
	}
	item.RelatedItems(params, NewNoopApiCallback[[]*Item]())
	item.RecommendedItems(params, NewNoopApiCallback[[]*Item]())

	assert.Equal(t, 2, transport.getCount())
	assert.Equal(t, "http://acct:secret@h/api/v1/acct/a/related?excludeLinked=true&maxResults=10&tags=x,y", transport.get(0).url)
	assert.Equal(t, "http://acct:secret@h/api/v1/acct/a/recommended?excludeLinked=true&maxResults=10&tags=x,y", transport.get(1).url)
}

func TestQueryDefaultParams(t *testing.T) {
	database, _ := newTestDatabase()
	item := NewItem(database, "a")
	assert.Equal(t, "http://acct:secret@h/api/v1/acct/a/related?excludeLinked=false&maxResults=20&tags=", item.QueryResource("related", nil).Url())
}

func TestRelatedItems(t *testing.T) {
	database, transport := newTestDatabase()
	item := NewItem(database, "a")

	var items []*Item
	item.RelatedItems(DefaultQueryParams(), NewApiCallback(func(result []*Item, err error) {
		assert.Equal(t, nil, err)
		items = result
	}))
	transport.get(0).callback.Result([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<directededge version="1.0">
<item id="a">
<related>p2</related>
<related>p1</related>
<recommended>ignored</recommended>
</item>
</directededge>
`), nil)

	assert.Equal(t, 2, len(items))
	assert.Equal(t, "p2", items[0].Id())
	assert.Equal(t, "p1", items[1].Id())
	for _, related := range items {
		assert.Equal(t, database, related.Database())
		assert.Equal(t, false, related.Cached())
	}
}

func TestRecommendedItemsError(t *testing.T) {
	database, transport := newTestDatabase()
	item := NewItem(database, "a")

	var queryErr error
	item.RecommendedItems(DefaultQueryParams(), NewApiCallback(func(result []*Item, err error) {
		assert.Equal(t, 0, len(result))
		queryErr = err
	}))
	transport.get(0).callback.Result(nil, &StatusError{StatusCode: 503, Message: "busy"})
	assert.Equal(t, "status 503: busy", queryErr.Error())
}
