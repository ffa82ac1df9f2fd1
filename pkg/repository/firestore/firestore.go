package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
)

const defaultCollection = "analyses"

type Option func(*Client)

// WithCollection changes the collection that stores analyses. The ID counter
// is kept in "<collection>_meta".
func WithCollection(name string) Option {
	return func(c *Client) {
		c.collection = name
	}
}

// Client is an AnalysisRepository backed by Firestore.
type Client struct {
	client     *firestore.Client
	collection string
}

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Client, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	c := &Client{
		client:     client,
		collection: defaultCollection,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (x *Client) Close() error {
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Firestore client")
	}
	return nil
}
