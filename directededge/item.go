package directededge

import (
	"bytes"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/exp/slices"
)


type ReadCallback ApiCallback[*Item]

type LinksCallback ApiCallback[[]Link]

type TagsCallback ApiCallback[[]string]

type PropertiesCallback ApiCallback[*PropertyMap]

type SaveCallback ApiCallback[struct{}]


// Item is a node in the remote graph with a local cache of its tags, links, and properties.
//
// Reads are coalesced: while a read is in flight, further reads only queue their callback
// and are answered by the same response, in the order they were made.
// Local mutations are not sent until `Save`.
type Item struct {
	id       string
	database *Database
	resource Resource

	stateLock sync.Mutex

	tags       TagSet
	links      []Link
	properties PropertyMap
	// fifo. a get is in flight iff this is non-empty
	readCallbacks []ReadCallback
	cached        bool
}

func NewItem(database *Database, id string) *Item {
	return &Item{
		id:       id,
		database: database,
		resource: database.Base().AddResource(id),
	}
}

func (self *Item) Id() string {
	return self.id
}

func (self *Item) Database() *Database {
	return self.database
}

func (self *Item) Resource() Resource {
	return self.resource
}

func (self *Item) Cached() bool {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.cached
}


// Read loads the item from the service. The callback receives this item once the
// response is applied, or the error that ended the read.
// Only the first of concurrent reads issues a request.
func (self *Item) Read(callback ReadCallback) {
	self.stateLock.Lock()
	self.readCallbacks = append(self.readCallbacks, callback)
	pendingCount := len(self.readCallbacks)
	self.stateLock.Unlock()

	if 1 < pendingCount {
		glog.V(2).Infof("[item]%s read joined (%d pending)\n", self.id, pendingCount)
		return
	}

	transport := self.database.Transport()
	if transport == nil {
		self.readHandler(nil, ErrNoTransport)
		return
	}
	glog.V(2).Infof("[item]%s read\n", self.id)
	transport.GetXml(self.resource.Url(), NewApiCallback(self.readHandler))
}

func (self *Item) readHandler(body []byte, err error) {
	var document *itemDocument
	if err == nil {
		document, err = parseItemDocument(bytes.NewReader(body))
		if err != nil {
			glog.Infof("[item]%s could not parse response = %s\n", self.id, err)
		}
	}

	self.stateLock.Lock()
	if err == nil {
		self.applyDocument(document)
		self.cached = true
	}
	callbacks := self.readCallbacks
	self.readCallbacks = nil
	self.stateLock.Unlock()

	glog.V(2).Infof("[item]%s read done (%d callbacks) err = %v\n", self.id, len(callbacks), err)

	for _, callback := range callbacks {
		HandleError(func() {
			callback.Result(self, err)
		})
	}
}

// must be called with the state lock
func (self *Item) applyDocument(document *itemDocument) {
	for _, link := range document.links {
		link.Source = self.id
		self.links = append(self.links, link)
	}
	for _, tag := range document.tags {
		self.tags.Add(tag)
	}
	for _, property := range document.properties {
		self.properties.Set(property.name, property.value)
	}
}

// Reload drops the cached tags, links, and properties and reads the item again.
func (self *Item) Reload(callback ReadCallback) {
	self.stateLock.Lock()
	self.tags.Clear()
	self.links = nil
	self.properties.Clear()
	self.cached = false
	self.stateLock.Unlock()

	self.Read(callback)
}


func (self *Item) GetLinks(callback LinksCallback) {
	getCached[[]Link](self, self.Links, callback)
}

func (self *Item) GetTags(callback TagsCallback) {
	getCached[[]string](self, self.Tags, callback)
}

func (self *Item) GetProperties(callback PropertiesCallback) {
	getCached[*PropertyMap](self, self.Properties, callback)
}

// answers synchronously from the cache, otherwise after a read
func getCached[R any](item *Item, snapshot func() R, callback ApiCallback[R]) {
	if item.Cached() {
		callback.Result(snapshot(), nil)
		return
	}
	item.Read(NewApiCallback(func(_ *Item, err error) {
		if err != nil {
			var empty R
			callback.Result(empty, err)
			return
		}
		callback.Result(snapshot(), nil)
	}))
}


// snapshots of the local state. These never read from the service.

func (self *Item) Links() []Link {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return slices.Clone(self.links)
}

func (self *Item) Tags() []string {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.tags.Values()
}

func (self *Item) Properties() *PropertyMap {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.properties.Clone()
}

// GetProperty reads only the local cache.
func (self *Item) GetProperty(key string) (string, bool) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.properties.Get(key)
}

func (self *Item) HasProperty(key string) bool {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.properties.Contains(key)
}

// weight of the first link to `target`
func (self *Item) WeightFor(target string) (int, bool) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	for _, link := range self.links {
		if link.Target == target {
			return link.Weight, true
		}
	}
	return 0, false
}


func (self *Item) LinkTo(target string, weight int, linkType string) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	self.links = append(self.links, Link{
		Source: self.id,
		Target: target,
		Weight: weight,
		Type:   linkType,
	})
}

// removes the first link with the same target and type
func (self *Item) Unlink(target string, linkType string) bool {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	i := slices.IndexFunc(self.links, func(link Link) bool {
		return link.Target == target && link.Type == linkType
	})
	if i < 0 {
		return false
	}
	self.links = slices.Delete(self.links, i, i+1)
	return true
}

// returns false if the tag is already present or is not well formed
func (self *Item) AddTag(tag string) bool {
	if !ValidTag(tag) {
		return false
	}
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.tags.Add(tag)
}

func (self *Item) RemoveTag(tag string) bool {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.tags.Remove(tag)
}

func (self *Item) SetProperty(key string, value string) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	self.properties.Set(key, value)
}

func (self *Item) RemoveProperty(key string) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	self.properties.Remove(key)
}


// Save puts the full local state. The local state is kept as is whatever the response.
func (self *Item) Save(callback SaveCallback) {
	transport := self.database.Transport()
	if transport == nil {
		callback.Result(struct{}{}, ErrNoTransport)
		return
	}
	glog.V(2).Infof("[item]%s save\n", self.id)
	transport.PutXml(self.resource.Url(), []byte(self.ToXml()), callback)
}
