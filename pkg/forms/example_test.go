package forms_test

import (
	"fmt"

	"github.com/go-drift/forms/pkg/forms"
	"github.com/go-drift/forms/pkg/validators"
)

func Example() {
	login := forms.NewGroup(map[string]forms.Control{
		"email":    forms.NewField("", forms.WithValidators(validators.Required, validators.Email)),
		"password": forms.NewField("", forms.WithValidators(validators.Required, validators.MinLength(8))),
	})

	fmt.Println(login.Status())

	_ = login.SetValue(map[string]any{
		"email":    "user@example.com",
		"password": "correct horse",
	})
	fmt.Println(login.Status())
	fmt.Println(login.Get("email").Value())

	// Output:
	// invalid
	// valid
	// user@example.com
}

func ExampleField_DidChange() {
	name := forms.NewField("draft", forms.WithUpdateOn(forms.UpdateOnBlur))

	name.DidChange("final")
	fmt.Println(name.Value())

	name.DidBlur()
	fmt.Println(name.Value(), name.Dirty(), name.Touched())

	// Output:
	// draft
	// final true true
}

func ExampleGroup_PatchValue() {
	profile := forms.NewGroup(map[string]forms.Control{
		"name": forms.NewField("anonymous"),
		"age":  forms.NewField(0),
	})

	_ = profile.PatchValue(map[string]any{"name": "pat"})
	value := profile.Value().(map[string]any)
	fmt.Println(value["name"], value["age"])

	// Output:
	// pat 0
}

func ExampleControl_Get() {
	root := forms.NewGroup(map[string]forms.Control{
		"address": forms.NewGroup(map[string]forms.Control{
			"phones": forms.NewArray([]forms.Control{
				forms.NewField("555-0100"),
			}),
		}),
	})

	fmt.Println(root.Get("address.phones.0").Value())
	fmt.Println(root.Get("address", "phones", 0).Value())
	fmt.Println(root.Get("address.missing"))

	// Output:
	// 555-0100
	// 555-0100
	// <nil>
}
