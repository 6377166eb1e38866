package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"meesho-recon/internal/domain"
)

// Vocabulary is the exporter-specific wording the engine matches against.
// Every section can be overridden from a YAML file.
type Vocabulary struct {
	// Statuses maps a lower-cased status spelling to its status.
	Statuses map[string]domain.Status `yaml:"statuses"`
	// Fields holds the ordered keyword groups per semantic field.
	Fields         map[domain.Field][][]string `yaml:"fields"`
	CourierAliases map[string]string           `yaml:"courier_aliases"`
	StyleRules     []string                    `yaml:"style_rules"`
	Colors         []string                    `yaml:"colors"`
	HeaderOffsets  map[string]int              `yaml:"header_offsets"`
}

func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Statuses: map[string]domain.Status{
			"delivered": domain.StatusDelivered,
			"return":    domain.StatusReturn,
			"exchange":  domain.StatusExchange,
			"cancelled": domain.StatusCancelled,
			"shipped":   domain.StatusShipped,
			"rto":       domain.StatusRTO,
		},
		Fields: map[domain.Field][][]string{
			domain.FieldOrderID:      {{"sub order no"}, {"sub order id"}, {"suborder"}, {"sub order"}, {"order", "id"}},
			domain.FieldStatus:       {{"live", "order", "status"}, {"order", "status"}, {"status"}},
			domain.FieldOrderDate:    {{"order", "date"}},
			domain.FieldDispatchDate: {{"dispatch", "date"}},
			domain.FieldPaymentDate:  {{"payment", "date"}},
			domain.FieldSKU:          {{"supplier", "sku"}, {"sku"}},
			domain.FieldSize:         {{"size"}},
			domain.FieldColor:        {{"color"}, {"colour"}},
			domain.FieldState:        {{"customer", "state"}, {"state"}},
			domain.FieldCatalogID:    {{"catalog", "id"}, {"catalog"}},
			domain.FieldSettlement:   {{"final", "settlement", "amount"}, {"settlement", "amount"}},
			domain.FieldAmount:       {{"final settlement amount"}, {"final amount"}, {"settlement amount"}, {"amount"}, {"price"}},
			domain.FieldListingPrice: {{"listing", "price"}},
			domain.FieldTotalSale:    {{"total", "sale", "amount"}},
			domain.FieldProfit:       {{"profit", "amount"}, {"profit"}},
			domain.FieldExchangeLoss: {{"exchange", "loss"}},
			domain.FieldReturnLoss:   {{"return", "loss"}},
			domain.FieldQuantity:     {{"quantity"}, {"qty"}},
			domain.FieldCourier:      {{"courier"}, {"logistics", "partner"}, {"shipping", "partner"}},
			domain.FieldReason:       {{"reason", "credit"}, {"return", "reason"}, {"reason"}},
			domain.FieldAdsCost:      {{"total", "ads", "cost"}, {"ads", "cost"}, {"spend"}},
		},
		CourierAliases: map[string]string{
			"pocketship":        "Valmo",
			"valmo":             "Valmo",
			"delhivery surface": "Delhivery",
			"delhivery":         "Delhivery",
			"xpressbees":        "Xpress Bees",
			"xpress bees":       "Xpress Bees",
			"ecom express":      "Ecom Express",
			"shadowfax":         "Shadowfax",
		},
		StyleRules: []string{},
		Colors: []string{
			"black", "white", "red", "blue", "green", "yellow", "pink", "purple",
			"orange", "grey", "gray", "brown", "maroon", "navy", "beige", "peach",
			"wine", "cream", "mustard", "olive",
		},
		HeaderOffsets: map[string]int{
			"orders":   0,
			"ads":      0,
			"returns":  7,
			"payments": 8,
			"old":      0,
			"new":      0,
			"payout":   0,
		},
	}
}

// LoadVocabulary reads a YAML override file on top of the defaults.
// Sections present in the file replace the default section wholesale.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	vocab := DefaultVocabulary()
	if len(override.Statuses) > 0 {
		vocab.Statuses = make(map[string]domain.Status, len(override.Statuses))
		for k, v := range override.Statuses {
			vocab.Statuses[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	for field, groups := range override.Fields {
		vocab.Fields[field] = groups
	}
	if len(override.CourierAliases) > 0 {
		vocab.CourierAliases = make(map[string]string, len(override.CourierAliases))
		for k, v := range override.CourierAliases {
			vocab.CourierAliases[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	if override.StyleRules != nil {
		vocab.StyleRules = override.StyleRules
	}
	if override.Colors != nil {
		vocab.Colors = override.Colors
	}
	for set, offset := range override.HeaderOffsets {
		if offset < 0 {
			return nil, fmt.Errorf("negative header offset for %q", set)
		}
		vocab.HeaderOffsets[set] = offset
	}
	return vocab, nil
}

// HeaderOffset returns the leading-row skip count for a named file set.
func (v *Vocabulary) HeaderOffset(set string) int {
	return v.HeaderOffsets[strings.ToLower(set)]
}
