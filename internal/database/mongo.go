package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rfm-segmentation/internal/model"
)

const mongoDatabase = "retail"

type MongoDriver struct {
	client *mongo.Client
}

type transactionDoc struct {
	Invoice     string               `bson:"invoice"`
	StockCode   string               `bson:"stock_code"`
	Description string               `bson:"description,omitempty"`
	Quantity    int                  `bson:"quantity"`
	InvoiceDate time.Time            `bson:"invoice_date"`
	Price       primitive.Decimal128 `bson:"price"`
	CustomerID  string               `bson:"customer_id,omitempty"`
	Country     string               `bson:"country,omitempty"`
}

func toDoc(tx model.Transaction) (transactionDoc, error) {
	price, err := primitive.ParseDecimal128(tx.Price.String())
	if err != nil {
		return transactionDoc{}, fmt.Errorf("invoice %s: price: %w", tx.Invoice, err)
	}
	return transactionDoc{
		Invoice:     tx.Invoice,
		StockCode:   tx.StockCode,
		Description: tx.Description,
		Quantity:    tx.Quantity,
		InvoiceDate: tx.InvoiceDate,
		Price:       price,
		CustomerID:  tx.CustomerID,
		Country:     tx.Country,
	}, nil
}

func (d transactionDoc) transaction() (model.Transaction, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invoice %s: price: %w", d.Invoice, err)
	}
	return model.Transaction{
		Invoice:     d.Invoice,
		StockCode:   d.StockCode,
		Description: d.Description,
		Quantity:    d.Quantity,
		InvoiceDate: d.InvoiceDate.UTC(),
		Price:       price,
		CustomerID:  d.CustomerID,
		Country:     d.Country,
	}, nil
}

func (md *MongoDriver) Connect(dsn string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	md.client = client
	return nil
}

func (md *MongoDriver) Close() error {
	if md.client == nil {
		return nil
	}
	return md.client.Disconnect(context.Background())
}

func (md *MongoDriver) collection(name string) *mongo.Collection {
	return md.client.Database(mongoDatabase).Collection(name)
}

// ExecuteTx runs txFunc inside a session without a multi-document
// transaction, so imports also work against standalone servers.
func (md *MongoDriver) ExecuteTx(ctx context.Context, txFunc func(interface{}) error) error {
	return md.client.UseSession(ctx, func(sessCtx mongo.SessionContext) error {
		return txFunc(sessCtx)
	})
}

func (md *MongoDriver) CreateSchema(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := md.collection(table).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customer_id", Value: 1}},
	})
	return err
}

func (md *MongoDriver) Reset(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	return md.collection(table).Drop(ctx)
}

func (md *MongoDriver) LoadTransactions(ctx context.Context, table string) ([]model.Transaction, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	cursor, err := md.collection(table).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []model.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		tx, err := doc.transaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, cursor.Err()
}

func insertDocs(txs []model.Transaction) ([]interface{}, error) {
	docs := make([]interface{}, len(txs))
	for i, tx := range txs {
		doc, err := toDoc(tx)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return docs, nil
}
