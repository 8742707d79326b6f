package inmemory

import "github.com/tdex-network/vault-program/internal/core/domain"

// activityLess orders activity by time, then by transaction id.
func activityLess(ts1 int64, txid1 string, ts2 int64, txid2 string) bool {
	if ts1 != ts2 {
		return ts1 < ts2
	}
	return txid1 < txid2
}

// pageBounds returns the slice bounds of the given page over a list of size
// items. A nil page selects the whole list.
func pageBounds(size int, page domain.Page) (int, int) {
	if page == nil {
		return 0, size
	}

	from := int((page.GetNumber() - 1) * page.GetSize())
	to := from + int(page.GetSize())
	if from < 0 {
		from = 0
	}
	if from > size {
		from = size
	}
	if to > size {
		to = size
	}
	if to < from {
		to = from
	}
	return from, to
}
