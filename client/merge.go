package client

// dropSuperseded discards pending entries that an authoritative snapshot
// now covers: same sender and equal content means the server accepted the
// send, so keeping the provisional copy would show a duplicate. Failed
// entries are kept; they represent sends the server never accepted.
func dropSuperseded(pending []Entry, snapshot []Message) []Entry {
	if len(pending) == 0 {
		return pending
	}

	// Count authoritative occurrences so two identical pending sends are
	// only discarded once each.
	type key struct {
		senderID int64
		content  string
	}
	counts := make(map[key]int)
	for _, msg := range snapshot {
		counts[key{msg.SenderID, msg.Content}]++
	}

	kept := pending[:0:0]
	for _, entry := range pending {
		if entry.Failed {
			kept = append(kept, entry)
			continue
		}
		k := key{entry.SenderID, entry.Content}
		if counts[k] > 0 {
			counts[k]--
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
