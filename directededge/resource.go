package directededge


// Resource accumulates a url path and query string.
// Values are embedded as given; no escaping is applied.
type Resource struct {
	path         string
	queryStarted bool
}

func NewResource(base string) Resource {
	return Resource{
		path: base,
	}
}

func (self Resource) AddResource(segment string) Resource {
	return Resource{
		path: self.path + "/" + segment,
	}
}

func (self Resource) AddKeyValuePair(key string, value string) Resource {
	sep := "?"
	if self.queryStarted {
		sep = "&"
	}
	return Resource{
		path:         self.path + sep + key + "=" + value,
		queryStarted: true,
	}
}

func (self Resource) Url() string {
	return self.path
}

func (self Resource) String() string {
	return redactUrl(self.path)
}
