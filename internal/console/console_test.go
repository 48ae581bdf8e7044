package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/marcus/workshop/internal/workshop"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runScript(t *testing.T, shop *workshop.Shop, opts []Option, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithNoColor(true)}, opts...)
	c := New(shop, script(lines...), &out, opts...)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\noutput:\n%s", w, out)
		}
	}
}

func TestExit(t *testing.T) {
	out := runScript(t, workshop.New("Garage"), nil, "3")
	assertContains(t, out, "User Type:", "1. Manager", "Exiting the system. Goodbye!")
}

func TestEOFEndsSession(t *testing.T) {
	var out bytes.Buffer
	c := New(workshop.New("Garage"), strings.NewReader(""), &out, WithNoColor(true))
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run on empty input: %v", err)
	}
	assertContains(t, out.String(), "Goodbye!")
}

func TestEOFInsideOperation(t *testing.T) {
	var out bytes.Buffer
	c := New(workshop.New("Garage"), strings.NewReader("1\n1\nAna\n"), &out, WithNoColor(true))
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertContains(t, out.String(), "Enter contact info: ", "Goodbye!")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(workshop.New("Garage"), script("3"), &bytes.Buffer{})
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestInvalidInputIsNotFatal(t *testing.T) {
	out := runScript(t, workshop.New("Garage"), nil,
		"abc",
		"9",
		"1", "x", "99", "12",
		"3",
	)
	assertContains(t, out,
		"Invalid input. Please enter a number (1, 2, or 3).",
		"Invalid choice. Please try again.",
		"Invalid input. Please enter a valid number.",
		"Exiting the system. Goodbye!",
	)
}

func TestMechanicMenuNeedsMechanics(t *testing.T) {
	out := runScript(t, workshop.New("Garage"), nil, "2", "3")
	assertContains(t, out, "No mechanics available. Please ask the manager to add mechanics.")
}

func TestAssignWithoutMechanicsOrTasks(t *testing.T) {
	out := runScript(t, workshop.New("Garage"), nil,
		"1",
		"9",
		"10", "Dee",
		"9",
		"12", "3",
	)
	assertContains(t, out, "No mechanics available.", "Mechanic added successfully with ID: 1", "No tasks to assign.")
}

func TestTaskLifecycle(t *testing.T) {
	shop := workshop.New("Garage")
	out := runScript(t, shop, nil,
		"1",
		"1", "Ana", "ana@example.com", "AB-123", "Civic",
		"10", "Dee",
		"8", "1", "Oil change", "1",
		"8", "1", "Engine", "5",
		"8", "42",
		"9", "1", "1",
		"12",
		"2", "dee",
		"1",
		"2", "1",
		"2", "7",
		"5",
		"3",
	)

	assertContains(t, out,
		"Customer registered successfully.",
		"Task created for customer Ana and added to the queue.",
		"Customer not found. Returning to menu.",
		"--> Description: Engine",
		"Task 'Engine' assigned to Mechanic Dee",
		"Mechanic Menu:",
		"--> Status: Pending",
		"Task 'Engine' marked as completed.",
		"Invalid task number. Returning to menu.",
	)

	pending := shop.PendingTasks()
	if len(pending) != 1 || pending[0].Description != "Oil change" {
		t.Errorf("pending = %v", pending)
	}
	assigned, _ := shop.AssignedTasks(1)
	if len(assigned) != 1 || !assigned[0].IsCompleted() {
		t.Errorf("assigned = %v", assigned)
	}
}

func TestAssignRejectsBadSelections(t *testing.T) {
	shop := workshop.New("Garage")
	out := runScript(t, shop, nil,
		"1",
		"3", "Bo", "bo@example.com", "XY-9", "Golf",
		"10", "Dee",
		"8", "1", "Brakes", "2",
		"9", "5",
		"9", "1", "8",
		"9", "z",
		"12", "3",
	)
	assertContains(t, out,
		"Invalid task number. Returning to menu.",
		"Invalid mechanic ID. Returning to menu.",
		"Invalid input. Please enter valid data.",
	)
	if len(shop.PendingTasks()) != 1 {
		t.Error("rejected assignments consumed the task")
	}
}

func TestCustomersAndNotifications(t *testing.T) {
	shop := workshop.New("Garage")
	out := runScript(t, shop, nil,
		"1",
		"3", "Eve", "eve@example.com", "EV-1", "Polo",
		"4",
		"6", "Your car is ready",
		"11", "1",
		"11",
		"2",
		"5", "Service due",
		"12", "3",
	)
	assertContains(t, out,
		"Unregistered walk-in customer added successfully.",
		"--> Registered: No",
		"Notification sent to unregistered customer Eve: Your car is ready",
		"Customer upgraded to registered successfully.",
		"No unregistered customers available to upgrade.",
		"--> Registered: Yes",
		"Notification sent to registered customer Eve: Service due",
	)
}

func TestPartsFlow(t *testing.T) {
	shop := workshop.New("Garage")
	out := runScript(t, shop, nil,
		"1",
		"7", "Acme", "PartsCo", "Bolt Bros", "DONE",
		"7", "acme", "done",
		"10", "Dee",
		"12",
		"2", "Dee",
		"4", "1", "3",
		"4", "1", "2", "Brake pads",
		"5",
		"3",
	)
	assertContains(t, out,
		"Manufacturer added successfully.",
		"Parts supplier added successfully to Acme",
		"Available Parts Suppliers for Acme:",
		"Invalid supplier number. Returning to menu.",
		"Part request sent for 'Brake pads' to Bolt Bros.",
	)
	if strings.Count(out, "Manufacturer added successfully.") != 1 {
		t.Error("existing manufacturer was added again")
	}
}

func TestUnknownMechanicName(t *testing.T) {
	shop := workshop.New("Garage")
	if _, err := shop.AddMechanic(context.Background(), "Dee"); err != nil {
		t.Fatal(err)
	}
	out := runScript(t, shop, nil, "2", "Zed", "3")
	assertContains(t, out, "Mechanic not found. Returning to main menu.")
}

func TestWorkshopBoard(t *testing.T) {
	calls := 0
	board := func(s *workshop.Shop) error {
		calls++
		if s.Name() != "Garage" {
			t.Errorf("board got shop %q", s.Name())
		}
		return nil
	}
	runScript(t, workshop.New("Garage"), []Option{WithBoard(board)}, "1", "13", "12", "3")
	if calls != 1 {
		t.Errorf("board called %d times, want 1", calls)
	}

	out := runScript(t, workshop.New("Garage"), nil, "1", "13", "12", "3")
	assertContains(t, out, "Workshop board is not available in this session.")

	failing := func(*workshop.Shop) error { return errors.New("no tty") }
	out = runScript(t, workshop.New("Garage"), []Option{WithBoard(failing)}, "1", "13", "12", "3")
	assertContains(t, out, "Workshop board failed: no tty")
}

func TestLongLineIsAccepted(t *testing.T) {
	shop := workshop.New("Garage")
	name := strings.Repeat("n", 70<<10)
	out := runScript(t, shop, nil,
		"1",
		"1", name, "ana@example.com", "AB-123", "Civic",
		"12", "3",
	)
	assertContains(t, out, "Customer registered successfully.", "Exiting the system. Goodbye!")

	got := shop.RegisteredCustomers()
	if len(got) != 1 || got[0].Name != name {
		t.Errorf("registered %d customers, want one with the full name", len(got))
	}
}

func TestOverlongLineReturnsToMainMenu(t *testing.T) {
	shop := workshop.New("Garage")
	huge := strings.Repeat("x", maxLineBytes+10)
	out := runScript(t, shop, nil,
		"1",
		"1", huge,
		huge,
		"1",
		"1", "Bo", "bo@example.com", "XY-9", "Golf",
		"12", "3",
	)
	assertContains(t, out,
		"Input line too long. Returning to main menu.",
		"Invalid input. Please enter a number (1, 2, or 3).",
		"Customer registered successfully.",
		"Exiting the system. Goodbye!",
	)
	if got := shop.RegisteredCustomers(); len(got) != 1 || got[0].Name != "Bo" {
		t.Errorf("registered = %v", got)
	}
}

func TestReadLine(t *testing.T) {
	huge := strings.Repeat("y", maxLineBytes+1)
	c := New(workshop.New("Garage"), strings.NewReader("a\r\n\n"+huge+"\nlast"), &bytes.Buffer{})

	for _, want := range []string{"a", ""} {
		got, err := c.readLine("")
		if err != nil || got != want {
			t.Fatalf("readLine = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := c.readLine(""); !errors.Is(err, errLineTooLong) {
		t.Fatalf("readLine over limit = %v, want errLineTooLong", err)
	}
	if got, err := c.readLine(""); err != nil || got != "last" {
		t.Fatalf("readLine after discard = %q, %v", got, err)
	}
	if _, err := c.readLine(""); !errors.Is(err, io.EOF) {
		t.Fatalf("readLine at end = %v, want io.EOF", err)
	}
}

func TestAssignHighestPriority(t *testing.T) {
	shop := workshop.New("Garage")
	out := runScript(t, shop, nil,
		"1",
		"14",
		"1", "Ana", "ana@example.com", "AB-123", "Civic",
		"10", "Dee",
		"14",
		"8", "1", "Oil change", "1",
		"8", "1", "Engine", "5",
		"14", "9",
		"14", "x",
		"14", "1",
		"12", "3",
	)
	assertContains(t, out,
		"No mechanics available.",
		"No tasks to assign.",
		"Highest Priority Task:",
		"Invalid mechanic ID. Returning to menu.",
		"Invalid input. Please enter valid data.",
		"Task 'Engine' assigned to Mechanic Dee",
	)

	pending := shop.PendingTasks()
	if len(pending) != 1 || pending[0].Description != "Oil change" {
		t.Errorf("pending = %v", pending)
	}
}
