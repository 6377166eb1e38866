package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"meesho-recon/internal/aggregate"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/resolver"
)

// FileSet names a logical group of uploaded files.
type FileSet string

const (
	SetOrders  FileSet = "orders"
	SetAds     FileSet = "ads"
	SetReturns FileSet = "returns"
	SetOld     FileSet = "old"
	SetNew     FileSet = "new"
	SetPayout  FileSet = "payout"
)

var FileSets = []FileSet{SetOrders, SetAds, SetReturns, SetOld, SetNew, SetPayout}

func ParseFileSet(s string) (FileSet, error) {
	set := FileSet(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FileSets {
		if set == known {
			return set, nil
		}
	}
	return "", fmt.Errorf("unknown file set %q", s)
}

// Upload is the ingested state of one file set.
type Upload struct {
	Table      *domain.Table
	Files      []parser.FileSummary
	Errors     []*domain.FileError
	Resolution resolver.Resolution
	// Records is set for order-like sets only.
	Records    []domain.OrderRecord
	RTOAdded   bool
	UploadedAt time.Time
}

// Context is the state of one operator session: uploaded tables, SKU
// groups, filter selections and the last reconciliation. It is safe for
// concurrent use.
type Context struct {
	ID        string
	CreatedAt time.Time

	mu         sync.RWMutex
	lastAccess time.Time
	uploads    map[FileSet]*Upload
	groups     []domain.SKUGroup
	filter     aggregate.Filter
	styleRules []aggregate.StyleRule
	report     *domain.ReconciliationReport
}

func New(id string, now time.Time) *Context {
	return &Context{
		ID:         id,
		CreatedAt:  now,
		lastAccess: now,
		uploads:    make(map[FileSet]*Upload),
	}
}

func (c *Context) Touch(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAccess = now
}

func (c *Context) LastAccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastAccess
}

// SetUpload replaces the upload of a file set. Replacing a snapshot set
// invalidates the last reconciliation.
func (c *Context) SetUpload(set FileSet, u *Upload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads[set] = u
	switch set {
	case SetOld, SetNew, SetPayout:
		c.report = nil
	}
}

func (c *Context) Upload(set FileSet) (*Upload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.uploads[set]
	return u, ok
}

// AddSKUGroup stores a group, replacing any group of the same name. Creating
// a group does not activate it; the filter names the active groups.
func (c *Context) AddSKUGroup(g domain.SKUGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.groups {
		if strings.EqualFold(existing.Name, g.Name) {
			c.groups[i] = g
			return
		}
	}
	c.groups = append(c.groups, g)
}

// ClearSKUGroups drops every group and deactivates them in the filter.
func (c *Context) ClearSKUGroups() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups = nil
	c.filter.ActiveGroups = nil
}

// DeleteSKUGroup drops one group by name and deactivates it.
func (c *Context) DeleteSKUGroup(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, g := range c.groups {
		if strings.EqualFold(g.Name, name) {
			c.groups = append(c.groups[:i], c.groups[i+1:]...)
			active := make([]string, 0, len(c.filter.ActiveGroups))
			for _, n := range c.filter.ActiveGroups {
				if !strings.EqualFold(n, name) {
					active = append(active, n)
				}
			}
			c.filter.ActiveGroups = active
			return true
		}
	}
	return false
}

func (c *Context) SKUGroups() []domain.SKUGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.SKUGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

func (c *Context) SetFilter(f aggregate.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.Groups = nil
	c.filter = f
}

// Filter returns the stored selection with the groups it activates attached.
func (c *Context) Filter() aggregate.Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.filter
	f.Groups, _ = aggregate.ActiveGroups(c.groups, f.ActiveGroups)
	return f
}

func (c *Context) SetStyleRules(rules []aggregate.StyleRule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.styleRules = rules
}

func (c *Context) StyleRules() []aggregate.StyleRule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.styleRules
}

func (c *Context) SetReport(r *domain.ReconciliationReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = r
}

func (c *Context) Report() (*domain.ReconciliationReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.report != nil
}

// Clear drops every upload, group, filter and report.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads = make(map[FileSet]*Upload)
	c.groups = nil
	c.filter = aggregate.Filter{}
	c.styleRules = nil
	c.report = nil
}

// UploadInfo is the public view of one upload.
type UploadInfo struct {
	Set        FileSet                 `json:"set"`
	Columns    []string                `json:"columns"`
	Rows       int                     `json:"rows"`
	Files      []parser.FileSummary    `json:"files"`
	Errors     []*domain.FileError     `json:"errors,omitempty"`
	Resolved   map[domain.Field]string `json:"resolved"`
	Missing    []domain.Field          `json:"missing,omitempty"`
	UploadedAt time.Time               `json:"uploaded_at"`
}

// State is the JSON view of a session.
type State struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	LastAccess time.Time             `json:"last_access"`
	Uploads    []UploadInfo          `json:"uploads"`
	SKUGroups  []domain.SKUGroup     `json:"sku_groups"`
	Filter     aggregate.Filter      `json:"filter"`
	StyleRules []aggregate.StyleRule `json:"style_rules,omitempty"`
	LastRunID  string                `json:"last_run_id,omitempty"`
}

func Info(set FileSet, u *Upload) UploadInfo {
	return UploadInfo{
		Set:        set,
		Columns:    u.Table.Columns,
		Rows:       u.Table.Len(),
		Files:      u.Files,
		Errors:     u.Errors,
		Resolved:   u.Resolution.Resolved(),
		Missing:    u.Resolution.Missing(),
		UploadedAt: u.UploadedAt,
	}
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := State{
		ID:         c.ID,
		CreatedAt:  c.CreatedAt,
		LastAccess: c.lastAccess,
		Uploads:    make([]UploadInfo, 0, len(c.uploads)),
		SKUGroups:  append([]domain.SKUGroup{}, c.groups...),
		Filter:     c.filter,
		StyleRules: c.styleRules,
	}
	for _, set := range FileSets {
		if u, ok := c.uploads[set]; ok {
			s.Uploads = append(s.Uploads, Info(set, u))
		}
	}
	if c.report != nil {
		s.LastRunID = c.report.RunID
	}
	return s
}
