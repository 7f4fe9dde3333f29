package directededge

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/golang/glog"
)


const defaultMaxResults = 20


type ItemsCallback ApiCallback[[]*Item]


type QueryParams struct {
	ExcludeLinked bool
	MaxResults    int
	Tags          []string
}

func DefaultQueryParams() *QueryParams {
	return &QueryParams{
		MaxResults: defaultMaxResults,
	}
}

// appends `excludeLinked`, `maxResults`, then `tags` joined with `,`
func (self *QueryParams) apply(resource Resource) Resource {
	return resource.
		AddKeyValuePair("excludeLinked", strconv.FormatBool(self.ExcludeLinked)).
		AddKeyValuePair("maxResults", strconv.Itoa(self.MaxResults)).
		AddKeyValuePair("tags", strings.Join(self.Tags, ","))
}


func (self *Item) RelatedItems(params *QueryParams, callback ItemsCallback) {
	self.query("related", params, callback)
}

func (self *Item) RecommendedItems(params *QueryParams, callback ItemsCallback) {
	self.query("recommended", params, callback)
}

func (self *Item) QueryResource(method string, params *QueryParams) Resource {
	if params == nil {
		params = DefaultQueryParams()
	}
	return params.apply(self.resource.AddResource(method))
}

// the response lists ids in `<method>` elements. Each becomes an uncached item on the same database.
func (self *Item) query(method string, params *QueryParams, callback ItemsCallback) {
	transport := self.database.Transport()
	if transport == nil {
		callback.Result(nil, ErrNoTransport)
		return
	}

	resource := self.QueryResource(method, params)
	glog.V(2).Infof("[item]%s %s\n", self.id, method)

	transport.GetXml(resource.Url(), NewApiCallback(func(body []byte, err error) {
		if err != nil {
			callback.Result(nil, err)
			return
		}
		ids, err := parseQueryDocument(bytes.NewReader(body), method)
		if err != nil {
			glog.Infof("[item]%s could not parse %s response = %s\n", self.id, method, err)
			callback.Result(nil, err)
			return
		}
		items := make([]*Item, 0, len(ids))
		for _, id := range ids {
			items = append(items, NewItem(self.database, id))
		}
		callback.Result(items, nil)
	}))
}
