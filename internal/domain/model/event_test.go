package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/clipmark/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	convey.Convey("Given a normalized table", t, func() {
		table := model.Table{
			Header: []string{"Mins", "Secs", "Mins"},
			Rows:   [][]string{{"1", "2", "3"}},
		}

		convey.Convey("Then ColumnIndex resolves the first matching header", func() {
			convey.So(table.ColumnIndex("Mins"), convey.ShouldEqual, 0)
			convey.So(table.ColumnIndex("Secs"), convey.ShouldEqual, 1)
			convey.So(table.ColumnIndex("mins"), convey.ShouldEqual, -1)
		})

		convey.Convey("Then it is not empty", func() {
			convey.So(table.Empty(), convey.ShouldBeFalse)
			convey.So(model.Table{}.Empty(), convey.ShouldBeTrue)
		})
	})
}

func TestDefaultRoleMap(t *testing.T) {
	convey.Convey("Given a PerformaSports header", t, func() {
		header := []string{"Event Name", "Mins", "Secs", "Frames", "Team Name", "Outcome", "Player", "PSR", "Colormark"}

		convey.Convey("When defaults are resolved", func() {
			roles := model.DefaultRoleMap(header, nil)

			convey.Convey("Then every role matches its conventional column", func() {
				for role, name := range model.ConventionalHeaders {
					convey.So(roles[role], convey.ShouldEqual, name)
				}
				convey.So(roles.Validate(header), convey.ShouldBeNil)
			})
		})

		convey.Convey("When a conventional name is overridden", func() {
			roles := model.DefaultRoleMap(header, map[model.Role]string{model.RoleCode: "Player"})

			convey.Convey("Then the override is used", func() {
				convey.So(roles[model.RoleCode], convey.ShouldEqual, "Player")
			})
		})
	})

	convey.Convey("Given a header without conventional names", t, func() {
		header := []string{"a", "mins", "b"}

		convey.Convey("Then matching is case-sensitive and falls back to the first column", func() {
			roles := model.DefaultRoleMap(header, nil)
			convey.So(roles[model.RoleMins], convey.ShouldEqual, "a")
			convey.So(roles[model.RoleColormark], convey.ShouldEqual, "a")
		})
	})

	convey.Convey("Given an empty header", t, func() {
		convey.Convey("Then the map is empty", func() {
			convey.So(model.DefaultRoleMap(nil, nil), convey.ShouldBeEmpty)
		})
	})
}

func TestRoleMapValidate(t *testing.T) {
	convey.Convey("Given a role map", t, func() {
		header := []string{"A", "B"}
		roles := model.DefaultRoleMap(header, nil)

		convey.Convey("When a role points at a missing column", func() {
			bad := roles.Merge(model.RoleMap{model.RolePlayer: "Nope"})
			err := bad.Validate(header)

			convey.Convey("Then ErrUnknownColumn is returned", func() {
				convey.So(errors.Is(err, model.ErrUnknownColumn), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Nope")
			})
		})

		convey.Convey("When a role is missing", func() {
			partial := model.RoleMap{model.RoleMins: "A"}

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(partial.Validate(header), model.ErrUnknownColumn), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an unknown role is present", func() {
			extra := roles.Merge(model.RoleMap{model.Role("minutes"): "A"})

			convey.Convey("Then ErrUnknownRole is returned", func() {
				convey.So(errors.Is(extra.Validate(header), model.ErrUnknownRole), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When merging blank overrides", func() {
			merged := roles.Merge(model.RoleMap{model.RoleMins: "", model.RoleSecs: "B"})

			convey.Convey("Then blanks keep the base and the source is untouched", func() {
				convey.So(merged[model.RoleMins], convey.ShouldEqual, "A")
				convey.So(merged[model.RoleSecs], convey.ShouldEqual, "B")
				convey.So(roles[model.RoleSecs], convey.ShouldEqual, "A")
			})
		})
	})
}

func TestParseRole(t *testing.T) {
	convey.Convey("Given role names", t, func() {
		convey.Convey("Then known names parse case-insensitively", func() {
			r, err := model.ParseRole(" Colormark ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(r, convey.ShouldEqual, model.RoleColormark)
		})

		convey.Convey("Then unknown names fail", func() {
			_, err := model.ParseRole("minute")
			convey.So(errors.Is(err, model.ErrUnknownRole), convey.ShouldBeTrue)
		})
	})
}

func TestLabelGroupsOrder(t *testing.T) {
	convey.Convey("Given the label groups", t, func() {
		convey.Convey("Then they follow the fixed emission order", func() {
			groups := make([]string, 0, len(model.LabelGroups))
			for _, g := range model.LabelGroups {
				groups = append(groups, g.Group)
			}
			convey.So(groups, convey.ShouldResemble, []string{"Team in Possession", "Shot Outcome", "Player", "PSR", "Colormark"})
		})
	})
}
