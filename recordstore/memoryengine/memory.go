package memoryengine

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore keeps books and borrow records in memory.
type RecordStore struct {
	mu            sync.Mutex
	books         []recordstore.Book
	borrowRecords []recordstore.BorrowRecord
	nextBookID    int64
	nextRecordID  int64
	logger        recordstore.Logger
}

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore)

// WithLogger sets the logger for the RecordStore.
// Transactions are logged at debug level, rollbacks at warn level.
func WithLogger(logger recordstore.Logger) Option {
	return func(rs *RecordStore) {
		rs.logger = logger
	}
}

// WithBooks seeds the store with the given books.
// IDs are assigned in order, existing IDs on the input are ignored.
func WithBooks(books ...recordstore.NewBook) Option {
	return func(rs *RecordStore) {
		for _, book := range books {
			rs.insertBook(book)
		}
	}
}

// NewRecordStore creates an empty RecordStore.
func NewRecordStore(options ...Option) *RecordStore {
	rs := &RecordStore{nextBookID: 1, nextRecordID: 1}

	for _, option := range options {
		option(rs)
	}

	return rs
}

// FindBookByID returns the book with the given ID or recordstore.ErrBookNotFound.
func (rs *RecordStore) FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.Book{}, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := rs.bookIndex(bookID)
	if idx < 0 {
		return recordstore.Book{}, recordstore.ErrBookNotFound
	}

	return rs.books[idx], nil
}

// FindBookByISBN returns the book with the given ISBN or recordstore.ErrBookNotFound.
func (rs *RecordStore) FindBookByISBN(ctx context.Context, isbn string) (recordstore.Book, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.Book{}, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	for _, book := range rs.books {
		if book.ISBN == isbn {
			return book, nil
		}
	}

	return recordstore.Book{}, recordstore.ErrBookNotFound
}

// ListBooks returns all books ordered by ID.
func (rs *RecordStore) ListBooks(ctx context.Context) (recordstore.Books, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	return slices.Clone(rs.books), nil
}

// CountOutstanding returns the number of outstanding borrow records of the patron.
func (rs *RecordStore) CountOutstanding(ctx context.Context, patronID string) (int, error) {
	records, err := rs.ListOutstanding(ctx, patronID)

	return len(records), err
}

// FindOutstandingRecord returns the outstanding borrow record of the patron for the book
// or recordstore.ErrBorrowRecordNotFound.
func (rs *RecordStore) FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error) {
	records, err := rs.filterRecords(ctx, func(r recordstore.BorrowRecord) bool {
		return r.PatronID == patronID && r.BookID == bookID && r.IsOutstanding()
	})
	if err != nil {
		return recordstore.BorrowRecord{}, err
	}

	if len(records) == 0 {
		return recordstore.BorrowRecord{}, recordstore.ErrBorrowRecordNotFound
	}

	return records[0], nil
}

// ListOutstanding returns the outstanding borrow records of the patron ordered by due date.
func (rs *RecordStore) ListOutstanding(ctx context.Context, patronID string) (recordstore.BorrowRecords, error) {
	records, err := rs.filterRecords(ctx, func(r recordstore.BorrowRecord) bool {
		return r.PatronID == patronID && r.IsOutstanding()
	})

	sortByDueDate(records)

	return records, err
}

// ListHistory returns all borrow records of the patron, returned or not, newest first.
func (rs *RecordStore) ListHistory(ctx context.Context, patronID string) (recordstore.BorrowRecords, error) {
	records, err := rs.filterRecords(ctx, func(r recordstore.BorrowRecord) bool {
		return r.PatronID == patronID
	})

	slices.SortStableFunc(records, func(a, b recordstore.BorrowRecord) int {
		if c := b.BorrowDate.Compare(a.BorrowDate); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return records, err
}

// ListAllOutstanding returns the outstanding borrow records of all patrons ordered by due date.
func (rs *RecordStore) ListAllOutstanding(ctx context.Context) (recordstore.BorrowRecords, error) {
	records, err := rs.filterRecords(ctx, recordstore.BorrowRecord.IsOutstanding)

	sortByDueDate(records)

	return records, err
}

// InTransaction runs fn with exclusive access to the store.
// All changes made through tx are discarded when fn returns an error.
func (rs *RecordStore) InTransaction(ctx context.Context, fn recordstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	snapshot := rs.snapshot()

	if rs.logger != nil {
		rs.logger.Debug("memoryengine transaction started")
	}

	if err := fn(ctx, &transaction{rs: rs}); err != nil {
		rs.restore(snapshot)

		if rs.logger != nil {
			rs.logger.Warn("memoryengine transaction rolled back", "error", err.Error())
		}

		return err
	}

	return nil
}

// filterRecords returns copies of the matching records with the book's title and author attached.
func (rs *RecordStore) filterRecords(ctx context.Context, match func(recordstore.BorrowRecord) bool) (recordstore.BorrowRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	records := make(recordstore.BorrowRecords, 0)

	for _, record := range rs.borrowRecords {
		if !match(record) {
			continue
		}

		if idx := rs.bookIndex(record.BookID); idx >= 0 {
			record.BookTitle = rs.books[idx].Title
			record.BookAuthor = rs.books[idx].Author
		}

		if record.ReturnDate != nil {
			returnedAt := *record.ReturnDate
			record.ReturnDate = &returnedAt
		}

		records = append(records, record)
	}

	return records, nil
}

func (rs *RecordStore) bookIndex(bookID int64) int {
	return slices.IndexFunc(rs.books, func(b recordstore.Book) bool { return b.ID == bookID })
}

func (rs *RecordStore) insertBook(book recordstore.NewBook) recordstore.Book {
	stored := recordstore.Book{
		ID:              rs.nextBookID,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.TotalCopies,
	}

	rs.nextBookID++
	rs.books = append(rs.books, stored)

	return stored
}

type snapshot struct {
	books         []recordstore.Book
	borrowRecords []recordstore.BorrowRecord
	nextBookID    int64
	nextRecordID  int64
}

func (rs *RecordStore) snapshot() snapshot {
	return snapshot{
		books:         slices.Clone(rs.books),
		borrowRecords: slices.Clone(rs.borrowRecords),
		nextBookID:    rs.nextBookID,
		nextRecordID:  rs.nextRecordID,
	}
}

func (rs *RecordStore) restore(s snapshot) {
	rs.books = s.books
	rs.borrowRecords = s.borrowRecords
	rs.nextBookID = s.nextBookID
	rs.nextRecordID = s.nextRecordID
}

// transaction implements recordstore.Tx while the store's mutex is held.
type transaction struct {
	rs *RecordStore
}

func (t *transaction) InsertBook(ctx context.Context, book recordstore.NewBook) (recordstore.Book, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.Book{}, err
	}

	for _, existing := range t.rs.books {
		if existing.ISBN == book.ISBN {
			return recordstore.Book{}, recordstore.ErrDuplicateISBN
		}
	}

	return t.rs.insertBook(book), nil
}

func (t *transaction) AdjustBookAvailability(ctx context.Context, bookID int64, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx := t.rs.bookIndex(bookID)
	if idx < 0 {
		return recordstore.ErrAvailabilityNotAdjusted
	}

	adjusted := t.rs.books[idx].AvailableCopies + delta
	if adjusted < 0 || adjusted > t.rs.books[idx].TotalCopies {
		return recordstore.ErrAvailabilityNotAdjusted
	}

	t.rs.books[idx].AvailableCopies = adjusted

	return nil
}

func (t *transaction) InsertBorrowRecord(
	ctx context.Context,
	patronID string,
	bookID int64,
	borrowDate time.Time,
	dueDate time.Time,
) (recordstore.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return recordstore.BorrowRecord{}, err
	}

	for _, existing := range t.rs.borrowRecords {
		if existing.PatronID == patronID && existing.BookID == bookID && existing.IsOutstanding() {
			return recordstore.BorrowRecord{}, recordstore.ErrOutstandingRecordExists
		}
	}

	record := recordstore.BorrowRecord{
		ID:         t.rs.nextRecordID,
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowDate.UTC(),
		DueDate:    dueDate.UTC(),
	}

	if idx := t.rs.bookIndex(bookID); idx >= 0 {
		record.BookTitle = t.rs.books[idx].Title
		record.BookAuthor = t.rs.books[idx].Author
	}

	t.rs.nextRecordID++
	t.rs.borrowRecords = append(t.rs.borrowRecords, record)

	return record, nil
}

func (t *transaction) SetReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, record := range t.rs.borrowRecords {
		if record.PatronID == patronID && record.BookID == bookID && record.IsOutstanding() {
			returnedAt := returnDate.UTC()
			t.rs.borrowRecords[i].ReturnDate = &returnedAt

			return nil
		}
	}

	return recordstore.ErrBorrowRecordNotFound
}

func sortByDueDate(records recordstore.BorrowRecords) {
	slices.SortStableFunc(records, func(a, b recordstore.BorrowRecord) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}
