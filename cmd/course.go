package cmd

import (
	"fmt"
	"math"

	"github.com/sonar-libras/sonar/internal/app"
	"github.com/sonar-libras/sonar/internal/courses"
	"github.com/sonar-libras/sonar/internal/matcher"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:     "course",
	Aliases: []string{"courses"},
	Short:   "Libras courses",
}

var listCoursesCmd = &cobra.Command{
	Use:   "list",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("level")
		query, _ := cmd.Flags().GetString("query")
		found := matcher.FilterCourses(courses.Catalog(), level, query)
		if len(found) == 0 {
			cmd.Println("No courses found.")
			return nil
		}

		enrolled := map[string]models.CourseEnrollment{}
		if s, ok := application.Identity.Current(); ok {
			list, err := application.Courses.Enrollments(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			for _, e := range list {
				enrolled[e.CourseID] = e
			}
		}

		cmd.Println(titleStyle.Render("Cursos de Libras"))
		for _, c := range found {
			cmd.Printf("\n%s %s\n", labelStyle.Render("["+c.ID+"]"), c.Title)
			cmd.Printf("   %s\n", mutedStyle.Render(c.Description))
			field(cmd, "   ", "Level", levelName(c.Level))
			field(cmd, "   ", "Duration", c.Duration)
			cmd.Printf("   %s %d\n", labelStyle.Render("Modules:"), len(c.Modules))
			field(cmd, "   ", "Instructor", c.Instructor)
			if e, ok := enrolled[c.ID]; ok {
				cmd.Printf("   %s\n", progressBar(e.Progress))
			}
		}
		return nil
	},
}

var enrollCourseCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		course, ok := courses.FindCourse(args[0])
		if !ok {
			return fmt.Errorf("%w: course %s", app.ErrNotFound, args[0])
		}

		e, err := application.Courses.Enroll(cmd.Context(), s.ID, course)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Enrolled in %s (%d modules)\n", e.Title, len(e.Modules))
		return nil
	},
}

var progressCourseCmd = &cobra.Command{
	Use:   "progress [course-id]",
	Short: "Show your course progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		list, err := application.Courses.Enrollments(cmd.Context(), s.ID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			cmd.Println("You are not enrolled in any course. Use 'sonar course enroll'.")
			return nil
		}

		cmd.Println(titleStyle.Render("Meus Cursos"))
		for _, e := range list {
			if len(args) == 1 && e.CourseID != args[0] {
				continue
			}
			cmd.Printf("\n%s %s\n", labelStyle.Render("["+e.CourseID+"]"), e.Title)
			cmd.Printf("   %s (%d/%d módulos)\n", progressBar(e.Progress), e.CompletedModules(), len(e.Modules))
			if e.CompletedAt != nil {
				cmd.Printf("   %s %s\n", labelStyle.Render("Completed:"), e.CompletedAt.Format("02/01/2006"))
			}
			if len(args) == 0 {
				continue
			}
			for _, m := range e.Modules {
				mark := mutedStyle.Render("○")
				if m.Completed {
					mark = highlightStyle.Render("●")
				}
				cmd.Printf("   %s %s %s\n", mark, m.Title, mutedStyle.Render(m.ID))
			}
		}
		return nil
	},
}

var completeCourseCmd = &cobra.Command{
	Use:   "complete <course-id> <module-id>",
	Short: "Mark a module as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := application.Session()
		if err != nil {
			return err
		}

		if err := application.Courses.CompleteModule(cmd.Context(), s.ID, args[0], args[1]); err != nil {
			return err
		}

		e, ok, err := application.Courses.Enrollment(cmd.Context(), s.ID, args[0])
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("You are not enrolled in this course.")
			return nil
		}
		cmd.Printf("%s\n", progressBar(e.Progress))
		if e.Progress == 100 {
			cmd.Println(highlightStyle.Render("Parabéns! Course completed."))
		}
		return nil
	},
}

var playerCourseCmd = &cobra.Command{
	Use:   "player <course-id>",
	Short: "Watch course lessons and track them in the player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		course, ok := courses.FindCourse(args[0])
		if !ok {
			return fmt.Errorf("%w: course %s", app.ErrNotFound, args[0])
		}

		if moduleID, _ := cmd.Flags().GetString("mark"); moduleID != "" {
			pct, err := application.Courses.MarkPlayerModule(cmd.Context(), course, moduleID)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Module %s watched\n", moduleID)
			cmd.Println(progressBar(int(math.Round(pct))))
			return nil
		}

		watched, err := application.Courses.PlayerProgress(cmd.Context(), course.ID)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(course.Title))
		for _, m := range course.Modules {
			mark := mutedStyle.Render("○")
			if watched[m.ID] {
				mark = highlightStyle.Render("●")
			}
			cmd.Printf("%s %s %s\n", mark, m.Title, mutedStyle.Render(m.Duration))
		}
		return nil
	},
}

func levelName(level string) string {
	switch level {
	case courses.LevelBasic:
		return "Básico"
	case courses.LevelIntermediate:
		return "Intermediário"
	case courses.LevelAdvanced:
		return "Avançado"
	default:
		return titleCase(level)
	}
}

func init() {
	rootCmd.AddCommand(courseCmd)
	courseCmd.AddCommand(listCoursesCmd)
	courseCmd.AddCommand(enrollCourseCmd)
	courseCmd.AddCommand(progressCourseCmd)
	courseCmd.AddCommand(completeCourseCmd)
	courseCmd.AddCommand(playerCourseCmd)

	listCoursesCmd.Flags().String("level", matcher.AnyLevel, "basico, intermediario, avancado or todos")
	listCoursesCmd.Flags().StringP("query", "q", "", "Search title, description and instructor")
	playerCourseCmd.Flags().String("mark", "", "Mark this module as watched")
}
