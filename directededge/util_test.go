package directededge

import (
	"sync"
)


type testGet struct {
	url      string
	callback ApiCallback[[]byte]
}

type testPut struct {
	url      string
	body     []byte
	callback ApiCallback[struct{}]
}

// records requests and answers them only when the test says so
type testTransport struct {
	stateLock sync.Mutex

	gets []*testGet
	puts []*testPut
}

func newTestTransport() *testTransport {
	return &testTransport{}
}

func (self *testTransport) GetXml(url string, callback ApiCallback[[]byte]) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	self.gets = append(self.gets, &testGet{
		url:      url,
		callback: callback,
	})
}

func (self *testTransport) PutXml(url string, body []byte, callback ApiCallback[struct{}]) {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	self.puts = append(self.puts, &testPut{
		url:      url,
		body:     body,
		callback: callback,
	})
}

func (self *testTransport) getCount() int {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return len(self.gets)
}

func (self *testTransport) get(i int) *testGet {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.gets[i]
}

func (self *testTransport) put(i int) *testPut {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return self.puts[i]
}

func (self *testTransport) putCount() int {
	self.stateLock.Lock()
	defer self.stateLock.Unlock()
	return len(self.puts)
}


func newTestDatabase() (*Database, *testTransport) {
	transport := newTestTransport()
	settings := DefaultDatabaseSettings()
	settings.Host = "h"
	database := NewDatabaseWithTransport("acct", "secret", settings, transport)
	return database, transport
}

const testItemXml = `<?xml version="1.0" encoding="UTF-8"?>
<directededge version="1.0">
<item id="a">
<link weight="5" type="friend">b</link>
<link>c</link>
<tag>x</tag>
<tag></tag>
<tag>y</tag>
<property name="color">red</property>
</item>
</directededge>
`
