// Package search wraps the Elasticsearch client used to index knowledge-base
// resources for retrieval. Indexing is best-effort: the database row is the
// source of truth and the index can always be rebuilt from it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
)

// ResourceDoc is the document shape stored in the resource index.
type ResourceDoc struct {
	ResourceID  uint     `json:"resource_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	Priority    int      `json:"priority"`
}

// Client indexes and searches knowledge resources.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(addresses []string, index string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Client{es: es, index: index}, nil
}

// IndexResource writes the document under the resource's database id, so a
// retried sync overwrites the same document instead of duplicating it.
func (c *Client) IndexResource(ctx context.Context, doc ResourceDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal resource doc: %w", err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ResourceID), 10)),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index resource: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index resource: %s: %s", res.Status(), string(msg))
	}
	return nil
}

// SearchResources runs a multi-match query over title, description, content
// and keywords, boosting title hits.
func (c *Client) SearchResources(ctx context.Context, query string, size int) ([]ResourceDoc, error) {
	q := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "keywords^2", "description", "content"},
			},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search resources: %s: %s", res.Status(), string(msg))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ResourceDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]ResourceDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}
