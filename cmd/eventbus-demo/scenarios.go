package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dep2p/go-eventbus"
	"github.com/dep2p/go-eventbus/config"
)

// demoCategory 演示事件类别
type demoCategory struct{}

// orderPlaced 下单事件
type orderPlaced struct {
	eventbus.Of[demoCategory]
	ID    int
	Notes []string
}

// stockChanged 库存变化事件，由 orderPlaced 的处理器发布
type stockChanged struct {
	eventbus.Of[demoCategory]
	OrderID int
	Depth   int
}

type demoScenario struct {
	name string
	run  func(*eventbus.Bus[demoCategory], *config.Config) error
}

var allScenarios = []demoScenario{
	{name: "priority", run: runPriority},
	{name: "reentrant", run: runReentrant},
	{name: "failure", run: runFailure},
}

// selectScenarios 解析 -scenario 参数
func selectScenarios(name string) ([]demoScenario, error) {
	if name == "" || name == "all" {
		return allScenarios, nil
	}
	for _, s := range allScenarios {
		if s.name == name {
			return []demoScenario{s}, nil
		}
	}
	return nil, fmt.Errorf("未知场景: %s", name)
}

func names(list []demoScenario) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.name)
	}
	return out
}

// ============================================================================
//                              priority
// ============================================================================

func runPriority(bus *eventbus.Bus[demoCategory], _ *config.Config) error {
	note := func(name string) eventbus.Handler[orderPlaced] {
		return eventbus.Listener(func(e *orderPlaced) {
			e.Notes = append(e.Notes, name)
		})
	}

	a, b, c := note("A"), note("B"), note("C")
	eventbus.Subscribe(bus, a, eventbus.Priority(10))
	eventbus.Subscribe(bus, b, eventbus.Priority(5))
	eventbus.Subscribe(bus, c, eventbus.Priority(10))
	defer eventbus.Unsubscribe(bus, b)
	defer eventbus.Unsubscribe(bus, c)

	ev := &orderPlaced{ID: 1}
	eventbus.RaiseRef(bus, ev)
	fmt.Printf("delivery order: %s\n", strings.Join(ev.Notes, " "))

	eventbus.Unsubscribe(bus, a)
	ev = &orderPlaced{ID: 2}
	eventbus.RaiseRef(bus, ev)
	fmt.Printf("after removing A: %s\n", strings.Join(ev.Notes, " "))
	return nil
}

// ============================================================================
//                              reentrant
// ============================================================================

func runReentrant(bus *eventbus.Bus[demoCategory], _ *config.Config) error {
	const maxDepth = 2

	outer := eventbus.SubscribeScoped(bus, eventbus.Handler[stockChanged](eventbus.Listener(func(e *stockChanged) {
		fmt.Printf("%sstock changed for order %d (depth %d)\n", strings.Repeat("  ", e.Depth), e.OrderID, e.Depth)
		if e.Depth < maxDepth {
			eventbus.Raise(bus, stockChanged{OrderID: e.OrderID, Depth: e.Depth + 1})
		}
	})))
	defer outer.Close()

	audit := eventbus.SubscribeScoped(bus, eventbus.Handler[stockChanged](eventbus.Listener(func(e *stockChanged) {
		fmt.Printf("%saudit depth %d\n", strings.Repeat("  ", e.Depth), e.Depth)
	})), eventbus.Priority(-1))
	defer audit.Close()

	placed := eventbus.SubscribeScoped(bus, eventbus.Handler[orderPlaced](eventbus.Listener(func(e *orderPlaced) {
		eventbus.Raise(bus, stockChanged{OrderID: e.ID})
	})))
	defer placed.Close()

	eventbus.Raise(bus, orderPlaced{ID: 7})
	return nil
}

// ============================================================================
//                              failure
// ============================================================================

func runFailure(bus *eventbus.Bus[demoCategory], cfg *config.Config) error {
	if !cfg.RecoverPanics {
		fmt.Println("recover_panics is off, skipping the panicking handler")
	}

	failing := eventbus.SubscribeFunc(bus, func(*orderPlaced) error {
		return errors.New("payment declined")
	}, eventbus.Priority(2))
	defer eventbus.Unsubscribe(bus, failing)

	var panicking eventbus.Handler[orderPlaced]
	if cfg.RecoverPanics {
		panicking = eventbus.Listener(func(*orderPlaced) { panic("inventory offline") })
		eventbus.Subscribe(bus, panicking, eventbus.Priority(1))
		defer eventbus.Unsubscribe(bus, panicking)
	}

	survivor := eventbus.Listener(func(e *orderPlaced) {
		fmt.Printf("order %d still delivered to the last handler\n", e.ID)
	})
	eventbus.Subscribe(bus, eventbus.Handler[orderPlaced](survivor))
	defer eventbus.Unsubscribe(bus, eventbus.Handler[orderPlaced](survivor))

	eventbus.Raise(bus, orderPlaced{ID: 9})
	return nil
}

// printFailure 打印处理器失败
func printFailure(f *eventbus.HandlerFailure) {
	if f.Panicked {
		fmt.Printf("reported panic: %v\n", f.Err)
		return
	}
	fmt.Printf("reported failure: %v\n", f)
}
