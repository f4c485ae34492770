// Package graphql exposes the school domain and the current user over GraphQL
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/yigit/eventsphere/internal/app/models"
)

// NewSchema builds the GraphQL schema backed by r
func NewSchema(r *Resolver) (graphql.Schema, error) {
	genderEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Gender",
		Values: graphql.EnumValueConfigMap{
			string(models.GenderMale):   &graphql.EnumValueConfig{Value: models.GenderMale},
			string(models.GenderFemale): &graphql.EnumValueConfig{Value: models.GenderFemale},
			string(models.GenderOther):  &graphql.EnumValueConfig{Value: models.GenderOther},
		},
	})

	var teacherType, subjectType *graphql.Object

	teacherType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Teacher",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"age":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"gender":   &graphql.Field{Type: graphql.NewNonNull(genderEnum)},
				"subjects": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(subjectType))),
					Resolve: r.TeacherSubjects,
				},
			}
		}),
	})

	subjectType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Subject",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"teachers": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(teacherType))),
					Resolve: r.SubjectTeachers,
				},
			}
		}),
	})

	paginatedTeachersType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginatedTeachers",
		Fields: graphql.Fields{
			"total": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(teacherType)))},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	entityWithIDType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EntityWithId",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	teacherAddInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TeacherAddInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"gender": &graphql.InputObjectFieldConfig{Type: genderEnum, DefaultValue: models.GenderOther},
			"age":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	teacherEditInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TeacherEditInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"gender": &graphql.InputObjectFieldConfig{Type: genderEnum},
			"age":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	subjectAddInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubjectAddInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"teacherIds": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.Int))},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}
	subjectTeachersArgs := graphql.FieldConfigArgument{
		"subjectId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
		"teacherIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int)))},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"teachers": &graphql.Field{
				Type: graphql.NewNonNull(paginatedTeachersType),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: DefaultTeacherPageSize},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: r.Teachers,
			},
			"teacher": &graphql.Field{
				Type:    graphql.NewNonNull(teacherType),
				Args:    idArg,
				Resolve: r.Teacher,
			},
			"subjects": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(subjectType))),
				Resolve: r.Subjects,
			},
			"subject": &graphql.Field{
				Type:    graphql.NewNonNull(subjectType),
				Args:    idArg,
				Resolve: r.Subject,
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.Me,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"teacherAdd": &graphql.Field{
				Type: graphql.NewNonNull(teacherType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(teacherAddInput)},
				},
				Resolve: r.TeacherAdd,
			},
			"teacherEdit": &graphql.Field{
				Type: graphql.NewNonNull(teacherType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(teacherEditInput)},
				},
				Resolve: r.TeacherEdit,
			},
			"teacherDelete": &graphql.Field{
				Type:    graphql.NewNonNull(entityWithIDType),
				Args:    idArg,
				Resolve: r.TeacherDelete,
			},
			"subjectAdd": &graphql.Field{
				Type: graphql.NewNonNull(subjectType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(subjectAddInput)},
				},
				Resolve: r.SubjectAdd,
			},
			"subjectAssignTeachers": &graphql.Field{
				Type:    graphql.NewNonNull(subjectType),
				Args:    subjectTeachersArgs,
				Resolve: r.SubjectAssignTeachers,
			},
			"subjectRemoveTeachers": &graphql.Field{
				Type:    graphql.NewNonNull(subjectType),
				Args:    subjectTeachersArgs,
				Resolve: r.SubjectRemoveTeachers,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
