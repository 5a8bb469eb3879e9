package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/brightcms/backoffice"
	"github.com/brightcms/backoffice/resource"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"golang.org/x/term"
)

type loginCommand struct {
	app   *app
	Email string `short:"e" long:"email" required:"true" description:"account email"`
}

func (c *loginCommand) Execute([]string) error {
	bo, err := c.app.client()
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, "password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	user, err := bo.Auth.Login(c.app.context(), c.Email, string(secret))
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

type familyArgs struct {
	Family string `positional-arg-name:"family" description:"content|services|users|contacts"`
}

type listCommand struct {
	app      *app
	Page     int    `long:"page" default:"1" description:"page to load"`
	PageSize int    `long:"page-size" default:"20" description:"records per page"`
	Status   string `long:"status" description:"filter by status"`
	Category string `long:"category" description:"filter by category"`
	Query    string `short:"q" long:"query" description:"full-text search instead of a plain list"`
	Args     familyArgs `positional-args:"true" required:"true"`
}

func (c *listCommand) Execute([]string) error {
	bo, err := c.app.client()
	if err != nil {
		return err
	}
	filters := resource.Filters{}
	if c.Status != "" {
		filters["status"] = c.Status
	}
	if c.Category != "" {
		filters["category"] = c.Category
	}
	if c.Query != "" {
		filters["search"] = c.Query
	}
	return withFamily(bo, c.Args.Family, func(f family) error {
		rows, pagination, err := f.list(c.app.context(), c.Page, c.PageSize, filters)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Println(row)
		}
		fmt.Printf("page %d/%d, %d total\n", pagination.CurrentPage, pagination.TotalPages, pagination.TotalItems)
		return nil
	})
}

type statsCommand struct {
	app  *app
	Args familyArgs `positional-args:"true" required:"true"`
}

func (c *statsCommand) Execute([]string) error {
	bo, err := c.app.client()
	if err != nil {
		return err
	}
	return withFamily(bo, c.Args.Family, func(f family) error {
		stats, err := f.stats(c.app.context())
		if err != nil {
			return err
		}
		labels := make([]string, 0, len(stats.Counts))
		for label := range stats.Counts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Printf("%-12s %d\n", label, stats.Counts[label])
		}
		fmt.Printf("%-12s %d\n", "total", stats.Total)
		return nil
	})
}

type exportCommand struct {
	app    *app
	Format string     `long:"format" default:"json" description:"export format (json|csv)"`
	Out    string     `short:"o" long:"out" required:"true" description:"destination file"`
	Args   familyArgs `positional-args:"true" required:"true"`
}

func (c *exportCommand) Execute([]string) error {
	bo, err := c.app.client()
	if err != nil {
		return err
	}
	return withFamily(bo, c.Args.Family, func(f family) error {
		data, err := f.export(c.app.context(), c.Format)
		if err != nil {
			return err
		}
		fs := afs.New()
		if err = fs.Upload(c.app.context(), c.Out, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Out, err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(data), c.Out)
		return nil
	})
}

type importCommand struct {
	app  *app
	File string     `short:"f" long:"file" required:"true" description:"file to upload"`
	Args familyArgs `positional-args:"true" required:"true"`
}

func (c *importCommand) Execute([]string) error {
	bo, err := c.app.client()
	if err != nil {
		return err
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(c.app.context(), c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	return withFamily(bo, c.Args.Family, func(f family) error {
		result, err := f.importData(c.app.context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d of %d records\n", result.Imported, result.Total)
		return nil
	})
}

func withFamily(bo *backoffice.Client, name string, fn func(family) error) error {
	f, err := familyByName(bo, name)
	if err != nil {
		return err
	}
	return fn(f)
}

func familyByName(bo *backoffice.Client, name string) (family, error) {
	switch name {
	case "content":
		return &storeFamily[backoffice.Content]{store: bo.Content, describe: func(c backoffice.Content) string {
			return fmt.Sprintf("%-24s %-10s %s", c.ID, c.Status, c.Title)
		}}, nil
	case "services":
		return &storeFamily[backoffice.Service]{store: bo.Services, describe: func(s backoffice.Service) string {
			return fmt.Sprintf("%-24s %-10s %s", s.ID, s.Status, s.Name)
		}}, nil
	case "users":
		return &storeFamily[backoffice.User]{store: bo.Users, describe: func(u backoffice.User) string {
			return fmt.Sprintf("%-24s %-10s %s", u.ID, u.Status, u.Email)
		}}, nil
	case "contacts":
		return &storeFamily[backoffice.Contact]{store: bo.Contacts, describe: func(c backoffice.Contact) string {
			return fmt.Sprintf("%-24s %-10s %s <%s>", c.ID, c.Status, c.Name, c.Email)
		}}, nil
	default:
		return nil, errors.New("unknown resource family: " + name)
	}
}
