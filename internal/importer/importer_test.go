package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/docstore"
)

type failingWriter struct{}

func (failingWriter) Set(context.Context, string, string, map[string]interface{}) error {
	return errors.New("write failed")
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `itemId,name,category,price,description,stockQuantity,imageURL,color,isAvailable
iphone-15,iPhone 15,phone,"1,250,000",The phone,12,https://example.com/iphone.png,black,true
,AirPods,audio,329000,,0,,white,
mac-mini,Mac mini,desktop,890000,,3,,silver,false
`
	docs := docstore.NewMemory()
	imp := NewCSVImporter(strings.NewReader(csvData), docs, nil)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 items imported, got %d", count)
	}

	iphone, ok := docs.Get(catalog.ItemCollection, "iphone-15")
	if !ok {
		t.Fatalf("expected Item/iphone-15")
	}
	if iphone.Fields["price"] != 1250000 || iphone.Fields["stockQuantity"] != 12 || iphone.Fields["color"] != "black" {
		t.Fatalf("unexpected fields %+v", iphone.Fields)
	}
	if _, has := iphone.Fields["itemId"]; has {
		t.Fatalf("itemId must not be stored as a field")
	}

	mac, _ := docs.Get(catalog.ItemCollection, "mac-mini")
	if mac.Fields["isAvailable"] != false {
		t.Fatalf("expected mac-mini unavailable, got %+v", mac.Fields)
	}

	all, err := docs.List(context.Background(), catalog.ItemCollection)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var airpods *docstore.Document
	for i := range all {
		if all[i].Fields["name"] == "AirPods" {
			airpods = &all[i]
		}
	}
	if airpods == nil || airpods.ID == "" || airpods.Fields["isAvailable"] != true {
		t.Fatalf("expected generated id and default availability, got %+v", airpods)
	}
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"missing name":   "itemId,name,price\nx,,100\n",
		"negative price": "itemId,name,price\nx,Phone,-1\n",
		"bad stock":      "itemId,name,stockQuantity\nx,Phone,many\n",
		"bad flag":       "itemId,name,isAvailable\nx,Phone,maybe\n",
	}
	for name, data := range cases {
		_, err := NewCSVImporter(strings.NewReader(data), docstore.NewMemory(), nil).Run(context.Background())
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("%s: expected line 2 error, got %v", name, err)
		}
	}
}

func TestCSVImporter_RequiresNameColumn(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("itemId,price\nx,1\n"), docstore.NewMemory(), nil).Run(context.Background())
	if err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestCSVImporter_WriteError(t *testing.T) {
	count, err := NewCSVImporter(strings.NewReader("name\nPhone\n"), failingWriter{}, nil).Run(context.Background())
	if err == nil || count != 0 {
		t.Fatalf("expected write error, got count=%d err=%v", count, err)
	}
}
