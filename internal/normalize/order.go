package normalize

import (
	"fmt"
	"html"
	"net/url"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
)

// Default Cin7 web links.
const (
	DefaultWebURL           = "https://go.cin7.com/Cloud/TransactionEntry/TransactionEntry.aspx"
	DefaultCustomerAppsLink = "767392"
	noReference             = "No Ref"
)

// Fields lists the Cin7 sales order fields the board needs.
var Fields = []string{
	"Id", "Reference", "ProjectName", "Company", "FirstName",
	"CreatedDate", "EstimatedDeliveryDate",
	"Stage", "IsVoid", "LineItems",
}

// Options configures how deep links are built.
type Options struct {
	WebURL           string
	CustomerAppsLink string
}

// Normalizer converts raw records into orders.
type Normalizer struct {
	webURL           string
	customerAppsLink string
}

// New creates a Normalizer, filling in defaults for empty options.
func New(opts Options) *Normalizer {
	if opts.WebURL == "" {
		opts.WebURL = DefaultWebURL
	}
	if opts.CustomerAppsLink == "" {
		opts.CustomerAppsLink = DefaultCustomerAppsLink
	}
	return &Normalizer{
		webURL:           opts.WebURL,
		customerAppsLink: opts.CustomerAppsLink,
	}
}

// Order normalizes rec. It reports false for voided records and for
// records whose stage is outside the kickplate namespace.
// The due status is left at StatusNoDate for the classifier to fill in.
func (n *Normalizer) Order(rec model.RawRecord) (model.Order, bool) {
	if Bool(rec, "IsVoid") {
		return model.Order{}, false
	}

	stageName, _ := String(rec, "Stage")
	stage := model.Stage(stageName)
	if !stage.InNamespace() {
		return model.Order{}, false
	}

	order := model.Order{
		Stage:       stage,
		Reference:   escaped(rec, "Reference", noReference),
		ProjectName: escaped(rec, "ProjectName", ""),
		FirstName:   escaped(rec, "FirstName", ""),
		ExternalURL: "#",
	}

	if id, ok := ID(rec, "Id"); ok {
		order.ID = id
		order.HasID = true
		order.ExternalURL = n.link(id)
	}

	if v, ok := Resolve(rec, "CreatedDate"); ok {
		if t, ok := ParseDate(v); ok {
			order.CreatedDate = &t
		}
	}
	if v, ok := Resolve(rec, "EstimatedDeliveryDate"); ok {
		if t, ok := ParseDate(v); ok {
			order.EstimatedDeliveryDate = &t
		}
	}

	if items, ok := Resolve(rec, "LineItems"); ok {
		order.QuantityTotal = LineQuantity(items)
	}

	return order, true
}

func (n *Normalizer) link(id int64) string {
	return fmt.Sprintf("%s?idCustomerAppsLink=%s&OrderId=%d",
		n.webURL, url.QueryEscape(n.customerAppsLink), id)
}

func escaped(rec model.RawRecord, name, fallback string) string {
	s, ok := String(rec, name)
	if !ok {
		s = fallback
	}
	return html.EscapeString(s)
}
