package latest

import "testing"

func TestTicket_NewerSupersedes(t *testing.T) {
	tr := New()
	first := tr.Begin("sess|tab", "slhd")
	second := tr.Begin("sess|tab", "validasi1")

	if first.Current() {
		t.Error("first ticket should be stale after a newer request")
	}
	if !second.Current() {
		t.Error("second ticket should be current")
	}
}

func TestTicket_KeysAreIndependent(t *testing.T) {
	tr := New()
	a := tr.Begin("sess-a|tab", "slhd")
	tr.Begin("sess-b|tab", "wawancara")
	if !a.Current() {
		t.Error("another session's request must not invalidate this one")
	}
}

func TestTicket_DoneResetsKey(t *testing.T) {
	tr := New()
	old := tr.Begin("k", "x")
	cur := tr.Begin("k", "y")
	cur.Done()
	if len(tr.seq) != 0 || len(tr.want) != 0 {
		t.Errorf("tracker not cleaned: %v %v", tr.seq, tr.want)
	}
	old.Done()
	if old.Current() {
		t.Error("old ticket must remain stale after the key is forgotten")
	}
}

func TestTicket_StaleDoneKeepsNewer(t *testing.T) {
	tr := New()
	old := tr.Begin("k", "x")
	cur := tr.Begin("k", "y")
	old.Done()
	if !cur.Current() {
		t.Error("finishing a stale ticket must not clear the newer one")
	}
}

func TestTicket_ZeroValueIsCurrent(t *testing.T) {
	var k Ticket
	if !k.Current() {
		t.Error("zero ticket should be current")
	}
	k.Done()
}
