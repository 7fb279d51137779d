package cin7

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
)

// SalesOrdersPath is the sales order resource.
const SalesOrdersPath = "/SalesOrders"

// PageKind tells which response shape a list call came back in.
type PageKind int

const (
	// PageUnrecognized is anything that is not an array or object.
	PageUnrecognized PageKind = iota
	// PageList is a bare JSON array of records.
	PageList
	// PageWrapped is an object carrying the array under "data" or "Data".
	PageWrapped
	// PageSingle is a lone record object.
	PageSingle
	// PageEmptyObject is an object with neither a wrapped list nor an Id.
	PageEmptyObject
)

func (k PageKind) String() string {
	switch k {
	case PageList:
		return "list"
	case PageWrapped:
		return "wrapped"
	case PageSingle:
		return "single"
	case PageEmptyObject:
		return "empty-object"
	default:
		return "unrecognized"
	}
}

// Page is a decoded list response.
type Page struct {
	Records []model.RawRecord
	Kind    PageKind
}

// wrapperKeys are the keys a wrapped page has been seen under, in priority order.
var wrapperKeys = []string{"data", "Data"}

// DecodePage normalizes the three response shapes of a list call into a
// sequence of records. Elements that are not objects are skipped.
func DecodePage(raw json.RawMessage) Page {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Page{Kind: PageUnrecognized}
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page{Kind: PageUnrecognized}
		}
		return Page{Kind: PageList, Records: decodeRecords(items)}

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Page{Kind: PageUnrecognized}
		}
		for _, key := range wrapperKeys {
			inner, ok := obj[key]
			if !ok {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(inner, &items); err == nil {
				return Page{Kind: PageWrapped, Records: decodeRecords(items)}
			}
			// A non-list under the first wrapper key settles the shape.
			break
		}

		var rec model.RawRecord
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return Page{Kind: PageUnrecognized}
		}
		if _, ok := rec["Id"]; ok && rec["Id"] != nil {
			return Page{Kind: PageSingle, Records: []model.RawRecord{rec}}
		}
		return Page{Kind: PageEmptyObject}

	default:
		return Page{Kind: PageUnrecognized}
	}
}

func decodeRecords(items []json.RawMessage) []model.RawRecord {
	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		var rec model.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// ListQuery describes one page of a list call.
type ListQuery struct {
	Fields []string
	Order  string
	Where  string
	Page   int
	Rows   int
}

// Values encodes q as URL query parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	v.Set("page", fmt.Sprintf("%d", q.Page))
	v.Set("rows", fmt.Sprintf("%d", q.Rows))
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	return v
}

// ExcludeStages builds a where clause rejecting every listed stage.
func ExcludeStages(stages []string) string {
	parts := make([]string, 0, len(stages))
	for _, s := range stages {
		parts = append(parts, fmt.Sprintf("Stage<>'%s'", strings.ReplaceAll(s, "'", "''")))
	}
	return strings.Join(parts, " AND ")
}
