// Package septest provides an in-memory stand-in for the data products API,
// used by package tests. It honors the same paths, status codes and JSON
// shapes the client is written against.
package septest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Server is a fake data products service backed by in-memory maps. It is not
// safe for concurrent mutation; tests drive it sequentially, matching the
// client's concurrency contract.
type Server struct {
	*httptest.Server

	// Username/Password, when set, require matching basic credentials.
	// BearerToken, when set, requires a matching Authorization header.
	Username    string
	Password    string
	BearerToken string

	// RefreshMetadata maps "dpID/viewName" to a raw JSON document returned
	// by the refreshMetadata endpoint. Missing entries yield a null body,
	// the server's way of saying the view never refreshed.
	RefreshMetadata map[string]string

	// WorkflowQueues maps "publish/dpID" or "delete/dpID" to the sequence of
	// status documents successive polls should observe. The last entry is
	// sticky.
	WorkflowQueues map[string][]string

	domains       map[string]map[string]any
	products      map[string]map[string]any
	tags          map[string][]map[string]any
	sampleQueries map[string][]map[string]any
	now           func() time.Time
}

// New starts the fake service.
func New() *Server {
	s := &Server{
		RefreshMetadata: map[string]string{},
		WorkflowQueues:  map[string][]string{},
		domains:         map[string]map[string]any{},
		products:        map[string]map[string]any{},
		tags:            map[string][]map[string]any{},
		sampleQueries:   map[string][]map[string]any{},
		now:             time.Now,
	}

	r := chi.NewRouter()
	r.Use(s.requireAuth)

	r.Route("/api/v1/dataProduct", func(r chi.Router) {
		r.Route("/domains", func(r chi.Router) {
			r.Get("/", s.listDomains)
			r.Post("/", s.createDomain)
			r.Get("/{id}", s.getDomain)
			r.Put("/{id}", s.updateDomain)
			r.Delete("/{id}", s.deleteDomain)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.searchProducts)
			r.Post("/", s.createProduct)
			r.Get("/{id}", s.getProduct)
			r.Put("/{id}", s.updateProduct)
			r.Post("/{id}/clone", s.cloneProduct)
			r.Get("/{id}/statistics", s.productStatistics)
			r.Get("/{id}/sampleQueries", s.listSampleQueries)
			r.Put("/{id}/sampleQueries", s.updateSampleQueries)
			r.Get("/{id}/materializedViews/{viewName}/refreshMetadata", s.refreshMetadata)
			r.Post("/{id}/workflows/{workflow}", s.startWorkflow)
			r.Get("/{id}/workflows/{workflow}", s.workflowStatus)
		})
		r.Route("/tags", func(r chi.Router) {
			r.Put("/products/{id}", s.updateTags)
			r.Get("/products/{id}", s.getTags)
			r.Delete("/{tagId}/products/{id}", s.deleteTag)
		})
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Host returns the host:port of the fake service, without a protocol.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Host
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Username != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != s.Username || pass != s.Password {
				http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
				return
			}
		}
		if s.BearerToken != "" {
			if r.Header.Get("Authorization") != "Bearer "+s.BearerToken {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	http.Error(w, `{"error":"`+what+` not found"}`, http.StatusNotFound)
}

func readBody(r *http.Request) map[string]any {
	var m map[string]any
	_ = json.NewDecoder(r.Body).Decode(&m)
	if m == nil {
		m = map[string]any{}
	}
	return m
}

// --- domains ---

func (s *Server) createDomain(w http.ResponseWriter, r *http.Request) {
	d := readBody(r)
	for _, existing := range s.domains {
		if existing["name"] == d["name"] {
			http.Error(w, `{"error":"domain name already exists"}`, http.StatusConflict)
			return
		}
	}
	d["id"] = uuid.NewString()
	d["createdAt"] = s.now().UTC().Format(time.RFC3339)
	d["createdBy"] = "septest"
	d["assignedDataProducts"] = []any{}
	s.domains[d["id"].(string)] = d
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listDomains(w http.ResponseWriter, _ *http.Request) {
	out := make([]map[string]any, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getDomain(w http.ResponseWriter, r *http.Request) {
	d, ok := s.domains[chi.URLParam(r, "id")]
	if !ok {
		notFound(w, "domain")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) updateDomain(w http.ResponseWriter, r *http.Request) {
	d, ok := s.domains[chi.URLParam(r, "id")]
	if !ok {
		notFound(w, "domain")
		return
	}
	body := readBody(r)
	if v, ok := body["description"]; ok && v != nil {
		d["description"] = v
	}
	if v, ok := body["schemaLocation"]; ok && v != nil {
		d["schemaLocation"] = v
	}
	d["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	d["updatedBy"] = "septest"
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDomain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.domains[id]; !ok {
		notFound(w, "domain")
		return
	}
	delete(s.domains, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- data products ---

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	p := readBody(r)
	s.materializeProduct(p)
	s.products[p["id"].(string)] = p
	writeJSON(w, http.StatusOK, p)
}

// materializeProduct fills in everything the real server assigns on create.
func (s *Server) materializeProduct(p map[string]any) {
	now := s.now().UTC().Format(time.RFC3339)
	p["id"] = uuid.NewString()
	p["status"] = "DRAFT"
	p["createdAt"] = now
	p["createdBy"] = "septest"
	p["updatedAt"] = now
	p["updatedBy"] = "septest"
	p["ratingsCount"] = 0
	p["bookmarkCount"] = 0
	if name, ok := p["name"].(string); ok {
		if schema, ok := p["schemaName"].(string); !ok || schema == "" {
			p["schemaName"] = name
		}
	}
	for _, key := range []string{"views", "materializedViews"} {
		views, _ := p[key].([]any)
		for _, v := range views {
			view, ok := v.(map[string]any)
			if !ok {
				continue
			}
			view["status"] = "DRAFT"
			view["createdAt"] = now
			view["createdBy"] = "septest"
			view["updatedAt"] = now
			view["updatedBy"] = "septest"
		}
	}
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	term := gjson.Get(r.URL.Query().Get("searchOptions"), "searchString").String()
	out := make([]map[string]any, 0, len(s.products))
	for _, p := range s.products {
		if term != "" && !s.productMatches(p, term) {
			continue
		}
		out = append(out, map[string]any{
			"id":            p["id"],
			"name":          p["name"],
			"catalogName":   p["catalogName"],
			"schemaName":    p["schemaName"],
			"dataDomainId":  p["dataDomainId"],
			"summary":       p["summary"],
			"status":        p["status"],
			"createdBy":     p["createdBy"],
			"ratingsCount":  p["ratingsCount"],
			"bookmarkCount": p["bookmarkCount"],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// productMatches mirrors the server's bookended %term% match across
// attributes.
func (s *Server) productMatches(p map[string]any, term string) bool {
	for _, key := range []string{"name", "summary", "description", "catalogName", "schemaName"} {
		if v, ok := p[key].(string); ok && strings.Contains(v, term) {
			return true
		}
	}
	return false
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.products[chi.URLParam(r, "id")]
	if !ok {
		notFound(w, "data product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	old, ok := s.products[id]
	if !ok {
		notFound(w, "data product")
		return
	}
	p := readBody(r)
	// Full replace: only server-assigned fields survive from the old record.
	for _, key := range []string{"id", "status", "createdAt", "createdBy", "ratingsCount", "bookmarkCount", "publishedAt", "publishedBy", "schemaName"} {
		if v, ok := old[key]; ok {
			p[key] = v
		}
	}
	p["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	p["updatedBy"] = "septest"
	s.products[id] = p
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) cloneProduct(w http.ResponseWriter, r *http.Request) {
	src, ok := s.products[chi.URLParam(r, "id")]
	if !ok {
		notFound(w, "data product")
		return
	}
	body := readBody(r)
	clone := map[string]any{}
	for k, v := range src {
		clone[k] = v
	}
	clone["name"] = body["newName"]
	clone["catalogName"] = body["catalogName"]
	clone["schemaName"] = body["newSchemaName"]
	if v, ok := body["dataDomainId"]; ok && v != nil {
		clone["dataDomainId"] = v
	}
	s.materializeProduct(clone)
	clone["schemaName"] = body["newSchemaName"]
	s.products[clone["id"].(string)] = clone
	writeJSON(w, http.StatusOK, clone)
}

func (s *Server) productStatistics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.products[id]; !ok {
		notFound(w, "data product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dataProductId":       id,
		"sevenDayQueryCount":  12,
		"thirtyDayQueryCount": 48,
		"sevenDayUserCount":   3,
		"thirtyDayUserCount":  7,
		"updatedAt":           s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) listSampleQueries(w http.ResponseWriter, r *http.Request) {
	queries := s.sampleQueries[chi.URLParam(r, "id")]
	if queries == nil {
		queries = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, queries)
}

func (s *Server) updateSampleQueries(w http.ResponseWriter, r *http.Request) {
	var queries []map[string]any
	_ = json.NewDecoder(r.Body).Decode(&queries)
	s.sampleQueries[chi.URLParam(r, "id")] = queries
	w.WriteHeader(http.StatusOK)
}

func (s *Server) refreshMetadata(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id") + "/" + chi.URLParam(r, "viewName")
	w.Header().Set("Content-Type", "application/json")
	doc, ok := s.RefreshMetadata[key]
	if !ok {
		w.Write([]byte("null"))
		return
	}
	w.Write([]byte(doc))
}

// --- workflows ---

func (s *Server) startWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	workflow := chi.URLParam(r, "workflow")
	if _, ok := s.products[id]; !ok {
		notFound(w, "data product")
		return
	}
	key := workflow + "/" + id
	if _, ok := s.WorkflowQueues[key]; !ok {
		// Default: one non-terminal poll, then success.
		workflowType := strings.ToUpper(workflow)
		s.WorkflowQueues[key] = []string{
			`{"workflowType":"` + workflowType + `","status":"IN_PROGRESS","errors":[],"isFinalStatus":false}`,
			`{"workflowType":"` + workflowType + `","status":"COMPLETED","errors":[],"isFinalStatus":true}`,
		}
	}
	if workflow == "publish" {
		s.products[id]["status"] = "PUBLISHED"
		s.products[id]["publishedAt"] = s.now().UTC().Format(time.RFC3339)
		s.products[id]["publishedBy"] = "septest"
	}
	if workflow == "delete" {
		delete(s.products, id)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) workflowStatus(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "workflow") + "/" + chi.URLParam(r, "id")
	queue, ok := s.WorkflowQueues[key]
	if !ok || len(queue) == 0 {
		notFound(w, "workflow")
		return
	}
	doc := queue[0]
	if len(queue) > 1 {
		s.WorkflowQueues[key] = queue[1:]
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// --- tags ---

func (s *Server) updateTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var values []map[string]any
	_ = json.NewDecoder(r.Body).Decode(&values)
	tags := make([]map[string]any, 0, len(values))
	for _, v := range values {
		tags = append(tags, map[string]any{"id": uuid.NewString(), "value": v["value"]})
	}
	s.tags[id] = tags
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) getTags(w http.ResponseWriter, r *http.Request) {
	tags := s.tags[chi.URLParam(r, "id")]
	if tags == nil {
		tags = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	dpID := chi.URLParam(r, "id")
	tagID := chi.URLParam(r, "tagId")
	tags := s.tags[dpID]
	for i, tag := range tags {
		if tag["id"] == tagID {
			s.tags[dpID] = append(tags[:i], tags[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w, "tag")
}
