// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package discord

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// maxPageSize is the maximum number of messages the API returns in a single
// request.
const maxPageSize = 100

// pageFunc fetches a single page of at most limit messages, newest first.
// At most one of before and after is non-zero.
type pageFunc func(ctx context.Context, before, after snowflake.ID, limit int) ([]Message, error)

// fetchPaged fetches q.Limit messages using as many requests as necessary and
// returns them newest first.  If only q.After is set, the pages are fetched
// forward from it, otherwise backwards from q.Before (or the latest message),
// stopping at q.After if it is set.
func fetchPaged(ctx context.Context, q MessageQuery, page pageFunc) ([]Message, error) {
	if q.Limit <= 0 {
		return nil, nil
	}
	if q.After != 0 && q.Before == 0 {
		return pageForward(ctx, q, page)
	}
	return pageBackward(ctx, q, page)
}

func pageBackward(ctx context.Context, q MessageQuery, page pageFunc) ([]Message, error) {
	var out []Message
	before := q.Before
	for len(out) < q.Limit {
		n := min(q.Limit-len(out), maxPageSize)
		batch, err := page(ctx, before, 0, n)
		if err != nil {
			return nil, err
		}
		for _, m := range batch {
			if q.After != 0 && m.ID <= q.After {
				return out, nil
			}
			out = append(out, m)
		}
		if len(batch) < n {
			break
		}
		before = batch[len(batch)-1].ID
	}
	return out, nil
}

func pageForward(ctx context.Context, q MessageQuery, page pageFunc) ([]Message, error) {
	var (
		pages [][]Message
		total int
	)
	after := q.After
	for total < q.Limit {
		n := min(q.Limit-total, maxPageSize)
		batch, err := page(ctx, 0, after, n)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		pages = append(pages, batch)
		total += len(batch)
		if len(batch) < n {
			break
		}
		after = newestID(batch)
	}
	// every next page is newer than the previous one.
	out := make([]Message, 0, total)
	for i := len(pages) - 1; i >= 0; i-- {
		out = append(out, pages[i]...)
	}
	return out, nil
}

func newestID(msgs []Message) snowflake.ID {
	var id snowflake.ID
	for _, m := range msgs {
		id = max(id, m.ID)
	}
	return id
}
