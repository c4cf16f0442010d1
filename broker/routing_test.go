package broker

import "testing"

func TestMatchTopicWorkedExamples(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"*.stock.#", "usd.stock", true},
		{"*.stock.#", "eur.stock.db", true},
		{"*.stock.#", "stock.nasdaq", false},
		{"#", "", true},
	}
	for _, c := range cases {
		got := matchTopic(parseTopicPattern(c.pattern), splitRoutingKey(c.key))
		if got != c.want {
			t.Errorf("match(%q, %q) = %v, want %v", c.pattern, c.key, got, c.want)
		}
	}
}

func TestMatchTopicMultiPattern(t *testing.T) {
	patterns := []string{"*.*.*", "#.usd", "#.stock.*", "*.#", "#", "na.*"}
	want := []bool{true, true, true, true, true, false}
	key := splitRoutingKey("na.stock.usd")
	for i, p := range patterns {
		got := matchTopic(parseTopicPattern(p), key)
		if got != want[i] {
			t.Errorf("match(%q, na.stock.usd) = %v, want %v", p, got, want[i])
		}
	}
}

func TestExchangeRouteDirect(t *testing.T) {
	ex := NewExchange("", Direct, true)
	q := &Queue{Name: "q1"}
	ex.Bind("q1", q)
	got := ex.Route("q1")
	if len(got) != 1 || got[0] != q {
		t.Fatalf("direct route mismatch: %v", got)
	}
	if got := ex.Route("nope"); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}

func TestExchangeRouteFanout(t *testing.T) {
	ex := NewExchange("amqp.fanout", Fanout, true)
	q1, q2 := &Queue{Name: "q1"}, &Queue{Name: "q2"}
	ex.Bind("", q1)
	ex.Bind("", q2)
	got := ex.Route("anything")
	if len(got) != 2 {
		t.Fatalf("fanout route = %v, want 2 queues", got)
	}
}

func TestExchangeRouteHeadersUnsupported(t *testing.T) {
	ex := NewExchange("h", Headers, true)
	q := &Queue{Name: "q1"}
	ex.Bind("ignored", q)
	if got := ex.Route("ignored"); len(got) != 0 {
		t.Fatalf("headers exchange should never route, got %v", got)
	}
}
