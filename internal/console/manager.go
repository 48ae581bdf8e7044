package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/marcus/workshop/internal/customers"
	"github.com/marcus/workshop/internal/notify"
	"github.com/marcus/workshop/internal/tasks"
	"github.com/marcus/workshop/internal/workshop"
)

func (c *Console) managerMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.heading("Manager Menu:")
		c.println("1. Register Customer")
		c.println("2. View All Registered Customers")
		c.println("3. Add Unregistered Walk-In Customer")
		c.println("4. View All Unregistered Customers")
		c.println("5. Send Notifications to Registered Customers")
		c.println("6. Send Notifications to Unregistered Customers")
		c.println("7. Add Manufacturer and Parts Suppliers")
		c.println("8. Create Task")
		c.println("9. Assign Tasks to Mechanics")
		c.println("10. Add Mechanic")
		c.println("11. Upgrade Unregistered Customer to Registered")
		c.println("12. Back to Main Menu")
		c.println("13. Workshop Board")
		c.println("14. Assign Highest Priority Task")

		choice, err := c.readInt("Enter your choice: ")
		if errors.Is(err, errNotNumber) {
			c.warn("Invalid input. Please enter a valid number.")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.addCustomer(ctx, true)
		case 2:
			c.listCustomers("Registered Customers:", c.shop.RegisteredCustomers(), "No registered customers found.")
		case 3:
			err = c.addCustomer(ctx, false)
		case 4:
			c.listCustomers("Unregistered Customers:", c.shop.UnregisteredCustomers(), "No unregistered customers found.")
		case 5:
			err = c.sendNotifications(ctx, notify.Registered)
		case 6:
			err = c.sendNotifications(ctx, notify.Unregistered)
		case 7:
			err = c.addManufacturerAndSuppliers(ctx)
		case 8:
			err = c.createTask(ctx)
		case 9:
			err = c.assignTask(ctx)
		case 10:
			err = c.addMechanic(ctx)
		case 11:
			err = c.upgradeCustomer(ctx)
		case 12:
			return nil
		case 13:
			c.showBoard()
		case 14:
			err = c.assignNext(ctx)
		default:
			c.warn("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) readDetails() (customers.Details, error) {
	var d customers.Details
	var err error
	if d.Name, err = c.readLine("Enter customer name: "); err != nil {
		return d, err
	}
	if d.ContactInfo, err = c.readLine("Enter contact info: "); err != nil {
		return d, err
	}
	if d.VehicleNumber, err = c.readLine("Enter vehicle number: "); err != nil {
		return d, err
	}
	if d.VehicleModel, err = c.readLine("Enter vehicle model: "); err != nil {
		return d, err
	}
	return d, nil
}

func (c *Console) addCustomer(ctx context.Context, registered bool) error {
	d, err := c.readDetails()
	if err != nil {
		return err
	}
	if registered {
		c.shop.RegisterCustomer(ctx, d)
		c.success("Customer registered successfully.")
		return nil
	}
	c.shop.AddWalkIn(ctx, d)
	c.success("Unregistered walk-in customer added successfully.")
	return nil
}

func (c *Console) listCustomers(title string, list []*customers.Customer, empty string) {
	c.heading(title)
	if len(list) == 0 {
		c.println(empty)
		return
	}
	for _, cu := range list {
		c.printf("Customer ID: %d\n", cu.ID)
		c.field("Name", cu.Name)
		c.field("Contact Info", cu.ContactInfo)
		c.field("Vehicle Number", cu.VehicleNumber)
		c.field("Vehicle Model", cu.VehicleModel)
		if cu.Registered {
			c.field("Registered", "Yes")
		} else {
			c.field("Registered", "No")
		}
	}
}

func (c *Console) sendNotifications(ctx context.Context, audience notify.Audience) error {
	msg, err := c.readLine("Enter notification message: ")
	if err != nil {
		return err
	}
	for _, n := range c.shop.Notify(ctx, audience, msg) {
		c.println(n.Text())
	}
	if line := c.shop.NextSlotLine(); line != "" {
		c.println(c.st.Muted.Render(line))
	}
	return nil
}

// addManufacturerAndSuppliers is shared by both menus.
func (c *Console) addManufacturerAndSuppliers(ctx context.Context) error {
	name, err := c.readLine("Enter manufacturer name: ")
	if err != nil {
		return err
	}
	m, created, err := c.shop.AddManufacturer(ctx, name)
	if errors.Is(err, workshop.ErrEmptyName) {
		c.warn("Manufacturer name cannot be empty. Returning to menu.")
		return nil
	}
	if err != nil {
		return err
	}
	if created {
		c.success("Manufacturer added successfully.")
	}

	for {
		supplier, err := c.readLine("Enter parts supplier name (or type 'done' to finish): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(supplier), "done") {
			return nil
		}
		if _, err := c.shop.AddSupplier(ctx, m, supplier); err != nil {
			c.warn("Supplier name cannot be empty.")
			continue
		}
		c.success("Parts supplier added successfully to " + m.Name)
	}
}

func (c *Console) createTask(ctx context.Context) error {
	c.heading("Select a customer to create a task for:")
	c.briefCustomers("Registered Customers:", c.shop.RegisteredCustomers(), "No registered customers available.")
	c.briefCustomers("Unregistered Customers:", c.shop.UnregisteredCustomers(), "No unregistered customers available.")

	c.println("")
	id, err := c.readInt("Enter the customer ID to create a task for: ")
	if err != nil {
		return c.invalidData(err)
	}
	cu, ok := c.shop.FindCustomer(id)
	if !ok {
		c.warn("Customer not found. Returning to menu.")
		return nil
	}

	desc, err := c.readLine("Enter task description: ")
	if err != nil {
		return err
	}
	prio, err := c.readInt("Enter task priority (higher number = higher priority): ")
	if err != nil {
		return c.invalidData(err)
	}

	if _, err := c.shop.CreateTask(ctx, cu.ID, desc, prio); err != nil {
		c.warn("Customer not found. Returning to menu.")
		return nil
	}
	c.success("Task created for customer " + cu.Name + " and added to the queue.")
	return nil
}

func (c *Console) briefCustomers(title string, list []*customers.Customer, empty string) {
	c.heading(title)
	if len(list) == 0 {
		c.println(empty)
		return
	}
	for _, cu := range list {
		c.printf("Customer ID: %d\n", cu.ID)
		c.field("Name", cu.Name)
		c.field("Vehicle Number", cu.VehicleNumber)
	}
}

func (c *Console) assignTask(ctx context.Context) error {
	switch err := c.shop.CanAssign(); {
	case errors.Is(err, workshop.ErrNoMechanics):
		c.warn("No mechanics available.")
		return nil
	case errors.Is(err, workshop.ErrNoPendingTasks):
		c.warn("No tasks to assign.")
		return nil
	}

	pending := c.shop.PendingTasks()
	c.heading("Pending Tasks:")
	c.printTasks(pending)

	pos, err := c.readInt("Enter the task number to assign: ")
	if err != nil {
		return c.invalidData(err)
	}
	if pos < 1 || pos > len(pending) {
		c.warn("Invalid task number. Returning to menu.")
		return nil
	}

	c.heading("Available Mechanics:")
	for _, m := range c.shop.Mechanics() {
		c.printf("ID: %d, Name: %s\n", m.ID, m.Name)
	}
	id, err := c.readInt("Enter the ID of the mechanic to assign this task: ")
	if err != nil {
		return c.invalidData(err)
	}

	t, m, err := c.shop.AssignTask(ctx, pos, id)
	switch {
	case errors.Is(err, workshop.ErrMechanicNotFound):
		c.warn("Invalid mechanic ID. Returning to menu.")
		return nil
	case errors.Is(err, workshop.ErrInvalidPosition):
		c.warn("Invalid task number. Returning to menu.")
		return nil
	case err != nil:
		c.warn("Error while assigning tasks: " + err.Error())
		return nil
	}
	c.success("Task '" + t.Description + "' assigned to Mechanic " + m.Name)
	return nil
}

// assignNext hands the head of the queue to a mechanic without asking for
// a task number.
func (c *Console) assignNext(ctx context.Context) error {
	switch err := c.shop.CanAssign(); {
	case errors.Is(err, workshop.ErrNoMechanics):
		c.warn("No mechanics available.")
		return nil
	case errors.Is(err, workshop.ErrNoPendingTasks):
		c.warn("No tasks to assign.")
		return nil
	}

	next := c.shop.PendingTasks()[0]
	c.heading("Highest Priority Task:")
	c.printTasks([]*tasks.Task{next})

	c.heading("Available Mechanics:")
	for _, m := range c.shop.Mechanics() {
		c.printf("ID: %d, Name: %s\n", m.ID, m.Name)
	}
	id, err := c.readInt("Enter the ID of the mechanic to assign this task: ")
	if err != nil {
		return c.invalidData(err)
	}

	t, m, err := c.shop.AssignNext(ctx, id)
	switch {
	case errors.Is(err, workshop.ErrMechanicNotFound):
		c.warn("Invalid mechanic ID. Returning to menu.")
		return nil
	case err != nil:
		c.warn("Error while assigning tasks: " + err.Error())
		return nil
	}
	c.success("Task '" + t.Description + "' assigned to Mechanic " + m.Name)
	return nil
}

func (c *Console) addMechanic(ctx context.Context) error {
	name, err := c.readLine("Enter mechanic name: ")
	if err != nil {
		return err
	}
	m, err := c.shop.AddMechanic(ctx, name)
	if err != nil {
		c.warn("Mechanic name cannot be empty. Returning to menu.")
		return nil
	}
	c.success("Mechanic added successfully with ID: " + strconv.Itoa(m.ID))
	return nil
}

func (c *Console) upgradeCustomer(ctx context.Context) error {
	list := c.shop.UnregisteredCustomers()
	if len(list) == 0 {
		c.warn("No unregistered customers available to upgrade.")
		return nil
	}

	c.heading("Unregistered Customers:")
	for i, cu := range list {
		c.printf("%d. Customer Details:\n", i+1)
		c.field("Name", cu.Name)
		c.field("Contact Info", cu.ContactInfo)
		c.field("Vehicle Number", cu.VehicleNumber)
		c.field("Vehicle Model", cu.VehicleModel)
	}

	pos, err := c.readInt("Enter the number of the customer to upgrade: ")
	if err != nil {
		return c.invalidData(err)
	}
	if _, err := c.shop.UpgradeCustomer(ctx, pos); err != nil {
		c.warn("Invalid selection. Returning to menu.")
		return nil
	}
	c.success("Customer upgraded to registered successfully.")
	return nil
}

func (c *Console) showBoard() {
	if c.board == nil {
		c.warn("Workshop board is not available in this session.")
		return
	}
	if err := c.board(c.shop); err != nil {
		c.log.ErrorCtx("board failed", map[string]any{"error": err.Error()})
		c.warn("Workshop board failed: " + err.Error())
	}
}
