package console

import (
	"context"
	"errors"

	"github.com/marcus/workshop/internal/staff"
	"github.com/marcus/workshop/internal/suppliers"
)

func (c *Console) mechanicMenu(ctx context.Context) error {
	name, err := c.readLine("Enter your name: ")
	if err != nil {
		return err
	}
	m, err := c.shop.MechanicByName(name)
	if err != nil {
		c.warn("Mechanic not found. Returning to main menu.")
		return nil
	}
	c.log.InfoCtx("mechanic signed in", map[string]any{"mechanic_id": m.ID})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.heading("Mechanic Menu:")
		c.println("1. View Assigned Tasks")
		c.println("2. Mark Task as Completed")
		c.println("3. Add Manufacturer and Parts Supplier")
		c.println("4. Request Part for Vehicle")
		c.println("5. Back to Main Menu")

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
			c.viewAssigned(m)
		case 2:
			err = c.completeTask(ctx, m)
		case 3:
			err = c.addManufacturerAndSuppliers(ctx)
		case 4:
			err = c.requestPart(ctx)
		case 5:
			return nil
		default:
			c.warn("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

// viewAssigned prints the mechanic's tasks and reports whether there were any.
func (c *Console) viewAssigned(m *staff.Mechanic) bool {
	c.heading("Assigned Tasks:")
	list := m.Tasks()
	if len(list) == 0 {
		c.println("No tasks assigned.")
		return false
	}
	c.printTasks(list)
	return true
}

func (c *Console) completeTask(ctx context.Context, m *staff.Mechanic) error {
	if !c.viewAssigned(m) {
		return nil
	}

	pos, err := c.readInt("Enter the task number to mark as completed: ")
	if errors.Is(err, errNotNumber) {
		c.warn("Invalid input. Please enter a valid number.")
		return nil
	}
	if err != nil {
		return err
	}

	t, err := c.shop.CompleteTask(ctx, m.ID, pos)
	if err != nil {
		c.warn("Invalid task number. Returning to menu.")
		return nil
	}
	c.success("Task '" + t.Description + "' marked as completed.")
	return nil
}

func (c *Console) requestPart(ctx context.Context) error {
	makers := c.shop.Manufacturers()
	c.heading("Available Manufacturers:")
	if len(makers) == 0 {
		c.warn("No manufacturers available. Add one first.")
		return nil
	}
	for i, mf := range makers {
		c.printf("%d. %s\n", i+1, mf.Name)
	}

	mPos, err := c.readInt("Select manufacturer by number: ")
	if errors.Is(err, errNotNumber) {
		c.warn("Invalid input. Please enter a valid number.")
		return nil
	}
	if err != nil {
		return err
	}
	if mPos < 1 || mPos > len(makers) {
		c.warn("Invalid manufacturer number. Returning to menu.")
		return nil
	}

	mf := makers[mPos-1]
	c.heading("Available Parts Suppliers for " + mf.Name + ":")
	for i, s := range mf.Suppliers() {
		c.printf("%d. %s\n", i+1, s.Name)
	}
	sPos, err := c.readInt("Select parts supplier by number: ")
	if errors.Is(err, errNotNumber) {
		c.warn("Invalid input. Please enter a valid number.")
		return nil
	}
	if err != nil {
		return err
	}
	if sPos < 1 || sPos > len(mf.Suppliers()) {
		c.warn("Invalid supplier number. Returning to menu.")
		return nil
	}

	part, err := c.readLine("Enter part description: ")
	if err != nil {
		return err
	}
	req, err := c.shop.RequestPart(ctx, mPos, sPos, part)
	switch {
	case errors.Is(err, suppliers.ErrInvalidManufacturer):
		c.warn("Invalid manufacturer number. Returning to menu.")
		return nil
	case errors.Is(err, suppliers.ErrInvalidSupplier):
		c.warn("Invalid supplier number. Returning to menu.")
		return nil
	case err != nil:
		c.warn("Error requesting part: " + err.Error())
		return nil
	}
	c.success(req.Message())
	return nil
}
