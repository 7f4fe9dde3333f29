package directededge

import (
	"bufio"
	"os"
	"strings"
)


// Exporter writes items to a single `<directededge>` document on disk.
// The file can be uploaded with `Database.ImportFromFile`.
type Exporter struct {
	file     *os.File
	out      *bufio.Writer
	database *Database
}

func NewExporter(path string) (*Exporter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	out := bufio.NewWriter(file)
	if _, err := out.WriteString(xmlHeader + documentOpen); err != nil {
		file.Close()
		return nil, err
	}
	return &Exporter{
		file: file,
		out:  out,
		// items built for export are never read or saved
		database: NewDatabaseWithTransport("exporter", "", DefaultDatabaseSettings(), nil),
	}, nil
}

// placeholder database to build items against for export
func (self *Exporter) Database() *Database {
	return self.database
}

func (self *Exporter) Export(item *Item) error {
	var b strings.Builder
	item.writeItemElement(&b)
	_, err := self.out.WriteString(b.String())
	return err
}

func (self *Exporter) Finish() error {
	if _, err := self.out.WriteString(documentClose); err != nil {
		self.file.Close()
		return err
	}
	if err := self.out.Flush(); err != nil {
		self.file.Close()
		return err
	}
	return self.file.Close()
}
