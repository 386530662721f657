package component

const definitionsJSON = `{
  "optString": {"type": ["string", "null"]},
  "optBool": {"type": ["boolean", "null"]},
  "stringList": {"type": ["array", "null"], "items": {"type": "string"}},
  "component": {
    "type": "object",
    "required": ["component_type"],
    "properties": {
      "id": {
        "type": "object",
        "properties": {
          "hash_code": {"type": "integer"},
          "tree_path": {"type": "string"},
          "depth": {"type": "integer", "minimum": 0}
        }
      },
      "component_type": {
        "type": "object",
        "required": ["class_name"],
        "properties": {
          "class_name": {"type": "string", "minLength": 1},
          "simple_name": {"type": "string"},
          "interfaces": {"$ref": "#/definitions/stringList"},
          "class_hierarchy": {"$ref": "#/definitions/stringList"}
        }
      },
      "identity": {
        "type": ["object", "null"],
        "properties": {
          "name": {"$ref": "#/definitions/optString"},
          "text": {"$ref": "#/definitions/optString"},
          "internal_name": {"$ref": "#/definitions/optString"},
          "title": {"$ref": "#/definitions/optString"},
          "tooltip": {"$ref": "#/definitions/optString"},
          "action_command": {"$ref": "#/definitions/optString"},
          "label_text": {"$ref": "#/definitions/optString"}
        }
      },
      "geometry": {
        "type": ["object", "null"],
        "properties": {
          "bounds": {
            "type": "object",
            "properties": {
              "x": {"type": "integer"},
              "y": {"type": "integer"},
              "width": {"type": "integer"},
              "height": {"type": "integer"}
            }
          }
        }
      },
      "state": {
        "type": ["object", "null"],
        "properties": {
          "visible": {"type": "boolean"},
          "showing": {"type": "boolean"},
          "enabled": {"type": "boolean"},
          "focusable": {"type": "boolean"},
          "focused": {"type": "boolean"},
          "selected": {"$ref": "#/definitions/optBool"},
          "editable": {"$ref": "#/definitions/optBool"}
        }
      },
      "accessibility": {
        "type": ["object", "null"],
        "properties": {
          "accessible_name": {"$ref": "#/definitions/optString"},
          "accessible_description": {"$ref": "#/definitions/optString"},
          "accessible_role": {"$ref": "#/definitions/optString"},
          "accessible_state": {"$ref": "#/definitions/stringList"},
          "accessible_actions": {"$ref": "#/definitions/stringList"}
        }
      },
      "properties": {"type": ["object", "null"]},
      "metadata": {"type": ["object", "null"]},
      "children": {
        "type": ["array", "null"],
        "items": {"$ref": "#/definitions/component"}
      }
    }
  }
}`

const componentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": ` + definitionsJSON + `,
  "allOf": [{"$ref": "#/definitions/component"}]
}`

const treeSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": ` + definitionsJSON + `,
  "type": "object",
  "required": ["roots"],
  "properties": {
    "metadata": {"type": ["object", "null"]},
    "roots": {
      "type": "array",
      "items": {"$ref": "#/definitions/component"}
    }
  }
}`
