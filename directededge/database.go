package directededge

import (
	"os"
	"time"
)


const DefaultHost = "webservice.directededge.com"
const DefaultProtocol = "http"
const DefaultApiPath = "/api/v1/"


func DefaultDatabaseSettings() *DatabaseSettings {
	return &DatabaseSettings{
		Host:           DefaultHost,
		Protocol:       DefaultProtocol,
		ApiPath:        DefaultApiPath,
		HttpTimeout:    defaultHttpTimeout,
		ConnectTimeout: defaultHttpConnectTimeout,
		TlsTimeout:     defaultHttpTlsTimeout,
	}
}


type DatabaseSettings struct {
	Host     string
	Protocol string
	// joins the host and the account name, with leading and trailing slash
	ApiPath string

	HttpTimeout    time.Duration
	ConnectTimeout time.Duration
	TlsTimeout     time.Duration
}


// Database is the connection identity for one account.
// It never contacts the network itself except to import a file.
type Database struct {
	accountName string
	credential  string
	host        string
	protocol    string
	apiPath     string

	base Resource

	transport Transport
}

func NewDatabaseWithDefaults(accountName string, credential string) *Database {
	return NewDatabase(accountName, credential, DefaultDatabaseSettings())
}

func NewDatabase(accountName string, credential string, settings *DatabaseSettings) *Database {
	return NewDatabaseWithTransport(accountName, credential, settings, NewHttpTransport(settings))
}

func NewDatabaseWithTransport(
	accountName string,
	credential string,
	settings *DatabaseSettings,
	transport Transport,
) *Database {
	database := &Database{
		apiPath:   settings.ApiPath,
		transport: transport,
	}
	database.Initialize(accountName, credential, settings.Host, settings.Protocol)
	return database
}

// Initialize sets the identity fields and derives the base resource
// `<protocol>://<account>:<credential>@<host><apiPath><account>`.
func (self *Database) Initialize(accountName string, credential string, host string, protocol string) {
	self.accountName = accountName
	self.credential = credential
	self.host = host
	self.protocol = protocol
	if self.apiPath == "" {
		self.apiPath = DefaultApiPath
	}

	self.base = NewResource(
		protocol + "://" + accountName + ":" + credential + "@" + host + self.apiPath + accountName,
	)
}

func (self *Database) AccountName() string {
	return self.accountName
}

func (self *Database) Host() string {
	return self.host
}

func (self *Database) Protocol() string {
	return self.protocol
}

func (self *Database) Base() Resource {
	return self.base
}

func (self *Database) Transport() Transport {
	return self.transport
}

// ImportFromFile uploads a complete `<directededge>` document to the account.
func (self *Database) ImportFromFile(path string, callback ApiCallback[struct{}]) {
	if self.transport == nil {
		callback.Result(struct{}{}, ErrNoTransport)
		return
	}
	body, err := os.ReadFile(path)
	if err != nil {
		callback.Result(struct{}{}, err)
		return
	}
	self.transport.PutXml(self.base.Url(), body, callback)
}
