package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dvcrn/hrms-api-client/internal/hr"
)

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "List and manage employees",
	}

	var filter hr.EmployeeFilter
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			employees, err := a.svc.ListEmployees(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), employees)
			}
			return printEmployees(cmd.OutOrStdout(), employees)
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "Match name, email or position")
	list.Flags().StringVar(&filter.Department, "department", "", "Only this department")
	list.Flags().StringVar(&filter.Status, "status", "", "Only this status (active, inactive, on_leave)")
	list.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.svc.GetEmployee(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}

	var createIn hr.EmployeeInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.svc.CreateEmployee(cmd.Context(), createIn)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	employeeFlags(create, &createIn)

	var updateIn hr.EmployeeInput
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace an employee record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.svc.UpdateEmployee(cmd.Context(), args[0], updateIn)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	employeeFlags(update, &updateIn)

	var patchIn hr.EmployeeInput
	patch := &cobra.Command{
		Use:   "patch ID",
		Short: "Change some fields of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.svc.PatchEmployee(cmd.Context(), args[0], patchIn)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	employeeFlags(patch, &patchIn)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.DeleteEmployee(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, patch, del)
	return cmd
}

func employeeFlags(cmd *cobra.Command, in *hr.EmployeeInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Work email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Department, "department", "", "Department name")
	cmd.Flags().StringVar(&in.Position, "position", "", "Job title")
	cmd.Flags().StringVar(&in.Status, "status", "", "active, inactive or on_leave")
	cmd.Flags().StringVar(&in.JoinDate, "join-date", "", "Start date as YYYY-MM-DD")
	cmd.Flags().Float64Var(&in.Salary, "salary", 0, "Yearly salary")
}

func printEmployees(w io.Writer, employees []hr.Employee) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tPOSITION\tSTATUS")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Department, e.Position, e.Status)
	}
	return tw.Flush()
}

func newDepartmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"dept"},
		Short:   "List and manage departments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			departments, err := a.svc.ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMANAGER\tEMPLOYEES")
			for _, d := range departments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", d.ID, d.Name, d.Manager, d.EmployeeCount)
			}
			return tw.Flush()
		},
	}

	var in hr.DepartmentInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a department (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.svc.CreateDepartment(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "Department name")
	create.Flags().StringVar(&in.Manager, "manager", "", "Manager name")
	create.Flags().StringVar(&in.Description, "description", "", "Description")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a department (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.DeleteDepartment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Department %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newLeavesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaves",
		Short: "List, file and decide leave requests",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			leaves, err := a.svc.ListLeaveRequests(cmd.Context(), status)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tDAYS\tSTATUS")
			for _, l := range leaves {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", l.ID, l.Employee, l.Type, l.StartDate, l.EndDate, l.Days, l.Status)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Only this status (pending, approved, rejected)")

	var in hr.LeaveRequestInput
	create := &cobra.Command{
		Use:   "create",
		Short: "File a leave request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.svc.CreateLeaveRequest(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), l)
		},
	}
	create.Flags().StringVar(&in.EmployeeID, "employee", "", "Employee ID")
	create.Flags().StringVar(&in.Type, "type", "annual", "Leave type")
	create.Flags().StringVar(&in.StartDate, "from", "", "First day as YYYY-MM-DD")
	create.Flags().StringVar(&in.EndDate, "to", "", "Last day as YYYY-MM-DD")
	create.Flags().StringVar(&in.Reason, "reason", "", "Reason")

	decide := func(use, short string, fn func(*hr.Service, context.Context, string) (*hr.LeaveRequest, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				l, err := fn(a.svc, cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Leave request %s %s\n", l.ID, l.Status)
				return nil
			},
		}
	}
	approve := decide("approve", "Approve a pending request (admin)", (*hr.Service).ApproveLeaveRequest)
	reject := decide("reject", "Reject a pending request (admin)", (*hr.Service).RejectLeaveRequest)

	cmd.AddCommand(list, create, approve, reject)
	return cmd
}
